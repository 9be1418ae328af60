package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string, opts Options) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, strings.NewReader(input), opts), &buf
}

func TestConsole_SayAndNotice(t *testing.T) {
	c, buf := newTestConsole("", Options{})
	c.Say("You're at the base of the CN Tower.")
	c.Notice("Game saved.")
	c.Break()

	assert.Equal(t, "You're at the base of the CN Tower.\nGame saved.\n\n---\n", buf.String())
}

func TestConsole_Wrap(t *testing.T) {
	c, buf := newTestConsole("", Options{Width: 20})
	c.Say("The view from up here is absolutely breathtaking!")

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20, line)
	}
	assert.Contains(t, buf.String(), "breathtaking!")
}

func TestConsole_Pause(t *testing.T) {
	tests := []struct {
		name   string
		pacing float64
		in     time.Duration
		want   []time.Duration
	}{
		{"real time", 1, 3 * time.Second, []time.Duration{3 * time.Second}},
		{"half speed", 0.5, 2 * time.Second, []time.Duration{time.Second}},
		{"disabled", 0, 5 * time.Second, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var slept []time.Duration
			c, _ := newTestConsole("", Options{
				Pacing: tt.pacing,
				Sleep:  func(d time.Duration) { slept = append(slept, d) },
			})
			c.Pause(tt.in)
			assert.Equal(t, tt.want, slept)
		})
	}
}

func TestConsole_ReadLine(t *testing.T) {
	c, buf := newTestConsole("Go North\r\nlook around\nexit", Options{})
	ctx := context.Background()

	line, err := c.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "Go North", line)

	line, err = c.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "look around", line)

	line, err = c.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "exit", line)

	_, err = c.ReadLine(ctx, "> ")
	require.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > > \n", buf.String())
}

func TestConsole_ReadLineCancelled(t *testing.T) {
	c, buf := newTestConsole("help\n", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ReadLine(ctx, "> ")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestConsole_ClearAndTitle(t *testing.T) {
	c, buf := newTestConsole("", Options{})
	c.Clear()
	assert.Empty(t, buf.String(), "no escape codes when not on a terminal")

	c.Title("CN Tower")
	assert.Contains(t, buf.String(), "CN TOWER")
}
