package runner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Special commands that trigger runner actions instead of engine input
const (
	ResetCommand = "RESET_SESSION"
)

// TestSuite defines a complete playthrough scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name       string          `json:"name"`
	Seed       *Seed           `json:"seed,omitempty"`       // Used for regular tests
	Overlay    json.RawMessage `json:"overlay,omitempty"`    // Inline overlay table, same shape as the dialogue file
	SweetMode  bool            `json:"sweet_mode,omitempty"` // Start with the overlay enabled
	Restricted bool            `json:"restricted,omitempty"` // Play as if from a restricted country
	BannerArt  string          `json:"banner_art,omitempty"` // Art returned by the banner source
	Steps      []TestStep      `json:"steps,omitempty"`      // Used for regular tests
	Cases      []string        `json:"cases,omitempty"`      // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// Seed overrides the fresh session a suite starts from. Unset fields keep
// their defaults.
type Seed struct {
	Location string          `json:"location,omitempty"`
	Currency *int            `json:"currency,omitempty"`
	Items    []string        `json:"items,omitempty"`
	Flags    map[string]bool `json:"flags,omitempty"`
}

// TestStep defines a single command and its expected outcomes
// Use command: "RESET_SESSION" to reset to the seed state
// Answers feed any prompts the command raises (choices, debug menu).
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Command      string       `json:"command"`
	Answers      []string     `json:"answers,omitempty"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Session properties
	Location  *string         `json:"location,omitempty"`  // Location waiting for the next command
	Currency  *int            `json:"currency,omitempty"`  // Money held
	Inventory []string        `json:"inventory,omitempty"` // Full inventory contents (order independent)
	NoItems   bool            `json:"no_items,omitempty"`  // Inventory must be empty
	Flags     map[string]bool `json:"flags,omitempty"`     // Flags that must be set to the given value
	Unset     []string        `json:"unset,omitempty"`     // Flags that must never have been set
	IsEnded   *bool           `json:"is_ended,omitempty"`  // Session reached exit or restart

	// Output Analysis
	OutputContains    []string `json:"output_contains,omitempty"`
	OutputNotContains []string `json:"output_not_contains,omitempty"`
	OutputRegex       string   `json:"output_regex,omitempty"`
	NoticeContains    []string `json:"notice_contains,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName   string
	StepName   string
	Success    bool
	Error      error
	Duration   time.Duration
	OutputText string
	IsReset    bool // True if this was a RESET_SESSION step (should not count toward pass/fail metrics)
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the engine session used for this test
}
