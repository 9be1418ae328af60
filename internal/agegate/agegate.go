// Package agegate asks for the player's age once and remembers it.
package agegate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jwebster45206/tower-engine/pkg/engine"
)

// MinAge is the youngest age allowed to play.
const MinAge = 16

// UnknownCountry labels the prompt when geolocation found nothing.
const UnknownCountry = "Unknown"

// AgeStore persists the single age value.
type AgeStore interface {
	SaveAge(ctx context.Context, age int) error
	LoadAge(ctx context.Context) (int, bool, error)
}

// Noticer receives the gate's messages.
type Noticer interface {
	Notice(line string)
}

type Gate struct {
	store  AgeStore
	in     engine.Prompter
	out    Noticer
	logger *slog.Logger
}

func New(store AgeStore, in engine.Prompter, out Noticer, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, in: in, out: out, logger: logger}
}

// Check reports whether the player may play. A stored age skips the
// prompt; otherwise it asks until it gets a number. An input error such as
// io.EOF is returned wrapped with a false result.
func (g *Gate) Check(ctx context.Context, country string) (bool, error) {
	if country == "" {
		country = UnknownCountry
	}

	age, ok, err := g.store.LoadAge(ctx)
	if err != nil {
		g.logger.Warn("Failed to load stored age", "error", err)
		ok = false
	}
	if ok {
		if age < MinAge {
			g.out.Notice(tooYoung)
			return false, nil
		}
		g.out.Notice(fmt.Sprintf("Welcome back! Your age (%d) was loaded automatically.", age))
		return true, nil
	}

	prompt := fmt.Sprintf("Enter your age (in %s): ", country)
	for {
		line, err := g.in.ReadLine(ctx, prompt)
		if err != nil {
			return false, fmt.Errorf("read age: %w", err)
		}
		age, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			g.out.Notice("Invalid input. Please enter a number.")
			continue
		}
		if age < MinAge {
			g.out.Notice(tooYoung)
			return false, nil
		}

		if err := g.store.SaveAge(ctx, age); err != nil {
			g.logger.Error("Failed to save age", "error", err)
			g.out.Notice(fmt.Sprintf("Error saving age: %v", err))
		} else {
			g.out.Notice("Age saved automatically.")
		}
		return true, nil
	}
}

const tooYoung = "Sorry, you must be 16 or older to play this game."
