package engine

import (
	"context"
	"io"
	"sync"
	"time"
)

// EventKind tags a Transcript entry.
type EventKind string

const (
	EventSay    EventKind = "say"
	EventNotice EventKind = "notice"
	EventPause  EventKind = "pause"
	EventBreak  EventKind = "break"
	EventClear  EventKind = "clear"
)

// Event is one thing written to a Transcript.
type Event struct {
	Kind  EventKind
	Text  string
	Pause time.Duration
}

// Transcript is an Output that records everything instead of printing it.
// It never sleeps.
type Transcript struct {
	mu     sync.Mutex
	events []Event
}

// Ensure Transcript implements Output
var _ Output = (*Transcript)(nil)

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) record(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, ev)
}

func (t *Transcript) Say(line string)       { t.record(Event{Kind: EventSay, Text: line}) }
func (t *Transcript) Notice(line string)    { t.record(Event{Kind: EventNotice, Text: line}) }
func (t *Transcript) Pause(d time.Duration) { t.record(Event{Kind: EventPause, Pause: d}) }
func (t *Transcript) Break()                { t.record(Event{Kind: EventBreak}) }
func (t *Transcript) Clear()                { t.record(Event{Kind: EventClear}) }

// Events returns a copy of everything recorded so far.
func (t *Transcript) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Lines returns the text of every Say and Notice in order.
func (t *Transcript) Lines() []string {
	var out []string
	for _, ev := range t.Events() {
		if ev.Kind == EventSay || ev.Kind == EventNotice {
			out = append(out, ev.Text)
		}
	}
	return out
}

// Said returns only narration lines.
func (t *Transcript) Said() []string {
	var out []string
	for _, ev := range t.Events() {
		if ev.Kind == EventSay {
			out = append(out, ev.Text)
		}
	}
	return out
}

// Paused returns the total requested pause time.
func (t *Transcript) Paused() time.Duration {
	var d time.Duration
	for _, ev := range t.Events() {
		d += ev.Pause
	}
	return d
}

// Reset drops everything recorded.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}

// ScriptedInput is a Prompter that replays fixed lines and then reports
// io.EOF. Prompts are recorded for assertions.
type ScriptedInput struct {
	mu      sync.Mutex
	lines   []string
	prompts []string
}

// Ensure ScriptedInput implements Prompter
var _ Prompter = (*ScriptedInput)(nil)

func NewScriptedInput(lines ...string) *ScriptedInput {
	return &ScriptedInput{lines: lines}
}

func (s *ScriptedInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Prompts returns every prompt shown so far.
func (s *ScriptedInput) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Remaining reports how many scripted lines are unread.
func (s *ScriptedInput) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// StaticBanner is a BannerSource with fixed art. An empty Art reports a
// failed fetch.
type StaticBanner struct {
	Art string
}

func (b StaticBanner) FetchBanner(ctx context.Context) (string, bool) {
	return b.Art, b.Art != ""
}
