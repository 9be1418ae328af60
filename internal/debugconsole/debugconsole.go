// Package debugconsole is the developer menu behind the "debug" command.
package debugconsole

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/jwebster45206/tower-engine/pkg/engine"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

// Noticer receives the menu text.
type Noticer interface {
	Notice(line string)
}

// Console implements engine.DebugConsole over a line prompter.
type Console struct {
	in     engine.Prompter
	out    Noticer
	logger *slog.Logger
}

var _ engine.DebugConsole = (*Console)(nil)

func New(in engine.Prompter, out Noticer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{in: in, out: out, logger: logger}
}

// Run loops over the menu until the player exits or picks a location. It
// edits a copy of ps; the caller's state is only replaced through the
// result.
func (c *Console) Run(ctx context.Context, ps *state.PlayerState, overlay, restricted bool) (engine.DebugResult, error) {
	res := engine.DebugResult{State: ps.Clone(), Overlay: overlay && !restricted}

	for {
		c.menu(restricted)
		choice, err := c.in.ReadLine(ctx, "Enter choice: ")
		if err != nil {
			return res, fmt.Errorf("read choice: %w", err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := c.addMoney(ctx, res.State); err != nil {
				return res, err
			}
		case "2":
			if err := c.addItem(ctx, res.State); err != nil {
				return res, err
			}
		case "3":
			if err := c.removeItem(ctx, res.State); err != nil {
				return res, err
			}
		case "4":
			loc, ok, err := c.setLocation(ctx)
			if err != nil {
				return res, err
			}
			if ok {
				res.Jump = loc
				return res, nil
			}
		case "5":
			c.out.Notice(res.State.Describe())
		case "6":
			c.out.Notice("Exiting debug menu...")
			return res, nil
		case "7":
			if restricted {
				c.out.Notice("Invalid choice.")
				continue
			}
			res.Overlay = !res.Overlay
			if res.Overlay {
				c.out.Notice("sweet+ Mode enabled")
			} else {
				c.out.Notice("sweet+ Mode disabled")
			}
		default:
			c.out.Notice("Invalid choice.")
		}
	}
}

func (c *Console) menu(restricted bool) {
	lines := []string{
		"\n--- Debug Menu ---",
		"1. Add Money",
		"2. Add Item",
		"3. Remove Item",
		"4. Set Location",
		"5. View Inventory",
		"6. Exit Debug Menu",
	}
	if !restricted {
		lines = append(lines, "7. Toggle Sweet+ Mode")
	}
	for _, l := range lines {
		c.out.Notice(l)
	}
}

func (c *Console) addMoney(ctx context.Context, ps *state.PlayerState) error {
	line, err := c.in.ReadLine(ctx, "Enter amount of money to add: ")
	if err != nil {
		return fmt.Errorf("read amount: %w", err)
	}
	amount, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || ps.Currency+amount < 0 {
		c.out.Notice("Invalid amount.")
		return nil
	}
	ps.Earn(amount)
	c.out.Notice(fmt.Sprintf("Added $%d. Current money: $%d", amount, ps.Currency))
	return nil
}

func (c *Console) readItem(ctx context.Context, prompt string) (state.Item, bool, error) {
	line, err := c.in.ReadLine(ctx, prompt)
	if err != nil {
		return "", false, fmt.Errorf("read item: %w", err)
	}
	item := state.Item(strings.ToLower(strings.TrimSpace(line)))
	if !slices.Contains(state.Items(), item) {
		c.out.Notice("Invalid item name.")
		return "", false, nil
	}
	return item, true, nil
}

func (c *Console) addItem(ctx context.Context, ps *state.PlayerState) error {
	names := make([]string, 0, len(state.Items()))
	for _, it := range state.Items() {
		names = append(names, string(it))
	}
	c.out.Notice("Available items: " + strings.Join(names, ", "))

	item, ok, err := c.readItem(ctx, "Enter item name to add: ")
	if err != nil || !ok {
		return err
	}
	ps.Grant(item)
	c.out.Notice(fmt.Sprintf("%s added to inventory.", item))
	return nil
}

func (c *Console) removeItem(ctx context.Context, ps *state.PlayerState) error {
	item, ok, err := c.readItem(ctx, "Enter item name to remove: ")
	if err != nil || !ok {
		return err
	}
	ps.Revoke(item)
	c.out.Notice(fmt.Sprintf("%s removed from inventory.", item))
	return nil
}

func (c *Console) setLocation(ctx context.Context) (state.Location, bool, error) {
	line, err := c.in.ReadLine(ctx, "Enter the location to set: ")
	if err != nil {
		return "", false, fmt.Errorf("read location: %w", err)
	}
	loc, err := state.ParseLocation(line)
	if err != nil {
		c.logger.Debug("Rejected debug jump", "error", err)
		c.out.Notice("Invalid location.")
		return "", false, nil
	}
	return loc, true, nil
}
