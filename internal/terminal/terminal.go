// Package terminal is the line-oriented console the game is played on.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/tower-engine/pkg/engine"
)

const clearSequence = "\033[H\033[2J"

// Options tunes a Console. Zero values mean: no wrapping, real-time pauses,
// time.Sleep.
type Options struct {
	Width  int
	Pacing float64 // multiplier for every pause; 0 disables pauses
	Sleep  func(time.Duration)
}

// Console writes narration to w and reads commands from r.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	r      *bufio.Reader
	width  int
	pacing float64
	sleep  func(time.Duration)
	clear  bool

	narration lipgloss.Style
	notice    lipgloss.Style
	prompt    lipgloss.Style
	title     lipgloss.Style
}

var (
	_ engine.Output   = (*Console)(nil)
	_ engine.Prompter = (*Console)(nil)
)

// New builds a Console. Colors follow what w supports; a plain buffer gets
// none.
func New(w io.Writer, r io.Reader, opts Options) *Console {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	renderer := lipgloss.NewRenderer(w)
	return &Console{
		w:      w,
		r:      bufio.NewReader(r),
		width:  opts.Width,
		pacing: opts.Pacing,
		sleep:  opts.Sleep,
		clear:  isTerminal(w),

		narration: renderer.NewStyle().
			Foreground(lipgloss.Color("86")), // green
		notice: renderer.NewStyle().
			Foreground(lipgloss.Color("214")), // yellow
		prompt: renderer.NewStyle().
			Foreground(lipgloss.Color("240")), // dark grey
		title: renderer.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 4),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func (c *Console) wrap(line string) string {
	if c.width <= 0 {
		return line
	}
	return wordwrap.String(line, c.width)
}

func (c *Console) println(style lipgloss.Style, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, style.Render(c.wrap(line)))
}

func (c *Console) Say(line string) {
	c.println(c.narration, line)
}

func (c *Console) Notice(line string) {
	c.println(c.notice, line)
}

// Pause blocks for d scaled by the pacing multiplier.
func (c *Console) Pause(d time.Duration) {
	scaled := time.Duration(float64(d) * c.pacing)
	if scaled > 0 {
		c.sleep(scaled)
	}
}

func (c *Console) Break() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, "\n---")
}

// Clear wipes the screen when writing to a terminal.
func (c *Console) Clear() {
	if !c.clear {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.w, clearSequence)
}

// Title prints the boxed game title.
func (c *Console) Title(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, c.title.Render(strings.ToUpper(text)))
}

// ReadLine prints prompt and returns the next line without its line
// ending. The read itself is not interruptible; ctx is checked before it.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	fmt.Fprint(c.w, c.prompt.Render(prompt))
	c.mu.Unlock()

	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			// Keep the farewell on its own line.
			c.mu.Lock()
			fmt.Fprintln(c.w)
			c.mu.Unlock()
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
