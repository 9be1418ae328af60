package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jwebster45206/tower-engine/internal/debugconsole"
	"github.com/jwebster45206/tower-engine/pkg/engine"
	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/scenario/cntower"
	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays test suites against an in-process engine
type Runner struct {
	Seed              uint64 // RNG seed for choice shuffles
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	SlogLogger        *slog.Logger
	ErrorHandlingMode ErrorHandlingMode
	Saves             engine.SessionStore // Defaults to a fresh MockStorage per suite
}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{
		Seed:              1,
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		SlogLogger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// session is one suite's engine plus the state the runner threads through it
type session struct {
	eng   *engine.Engine
	out   *engine.Transcript
	in    *answerQueue
	loc   state.Location
	ps    *state.PlayerState
	ended bool
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	sess, err := r.newSession(suite)
	if err != nil {
		result.Error = fmt.Errorf("failed to build engine: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = sess.eng.SessionID()

	if err := r.seed(ctx, sess, suite.Seed); err != nil {
		result.Error = fmt.Errorf("failed to seed session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, sess, step, suite.Seed)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) newSession(suite TestSuite) (*session, error) {
	table := overlay.Empty()
	if len(suite.Overlay) > 0 {
		var err error
		if table, err = overlay.ParseJSON(suite.Overlay); err != nil {
			return nil, fmt.Errorf("overlay: %w", err)
		}
	}

	store, err := cntower.New(table)
	if err != nil {
		return nil, err
	}

	saves := r.Saves
	if saves == nil {
		saves = storage.NewMockStorage()
	}

	logger := r.SlogLogger
	if logger == nil {
		logger = slog.Default()
	}

	out := engine.NewTranscript()
	in := &answerQueue{}
	eng, err := engine.New(engine.Config{
		Store:      store,
		Out:        out,
		In:         in,
		Saves:      saves,
		Debug:      debugconsole.New(in, out, logger),
		Banner:     engine.StaticBanner{Art: suite.BannerArt},
		Rand:       rand.New(rand.NewPCG(r.Seed, r.Seed>>17)),
		Logger:     logger,
		Overlay:    suite.SweetMode,
		Restricted: suite.Restricted,
	})
	if err != nil {
		return nil, err
	}
	return &session{eng: eng, out: out, in: in}, nil
}

// seed puts the session at the seed location and renders it the way the
// session loop would
func (r *Runner) seed(ctx context.Context, sess *session, seed *Seed) error {
	loc, ps := state.DefaultSession()
	if seed != nil {
		if seed.Location != "" {
			parsed, err := state.ParseLocation(seed.Location)
			if err != nil {
				return err
			}
			if parsed.Terminal() {
				return fmt.Errorf("seed location %q is terminal", parsed)
			}
			loc = parsed
		}
		if seed.Currency != nil {
			ps.Currency = *seed.Currency
		}
		for _, it := range seed.Items {
			ps.Grant(state.Item(it))
		}
		for f, v := range seed.Flags {
			ps.SetFlag(state.Flag(f), v)
		}
	}

	sess.loc, sess.ps, sess.ended = loc, ps, false
	sess.out.Reset()
	return r.settle(ctx, sess)
}

func (r *Runner) settle(ctx context.Context, sess *session) error {
	settled, err := sess.eng.Settle(ctx, sess.loc, sess.ps)
	if errors.Is(err, io.EOF) {
		settled, err = state.Exit, nil
	}
	if err != nil {
		return fmt.Errorf("render %q: %w", sess.loc, err)
	}
	sess.loc = settled
	sess.ended = settled.Terminal()
	return nil
}

func (r *Runner) runStep(ctx context.Context, sess *session, step TestStep, seed *Seed) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	if step.Command == ResetCommand {
		if err := r.seed(ctx, sess, seed); err != nil {
			result.Error = fmt.Errorf("failed to reset session: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		if err := r.checkExpectations(step.Expectations, sess); err != nil {
			result.Error = fmt.Errorf("reset expectation failed: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		result.Success = true
		result.IsReset = true
		result.OutputText = "[SESSION RESET]"
		result.Duration = time.Since(start)
		return result
	}

	if sess.ended {
		result.Error = fmt.Errorf("session already ended at %q", sess.loc)
		result.Duration = time.Since(start)
		return result
	}

	sess.out.Reset()
	sess.in.Load(step.Answers)

	out, err := sess.eng.Interpret(ctx, sess.loc, step.Command, sess.ps)
	if errors.Is(err, io.EOF) {
		out, err = engine.Outcome{Next: state.Exit, State: sess.ps}, nil
	}
	if err != nil {
		result.Error = fmt.Errorf("interpret %q: %w", step.Command, err)
		result.Duration = time.Since(start)
		return result
	}
	sess.loc, sess.ps = out.Next, out.State

	if err := r.settle(ctx, sess); err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}
	result.OutputText = strings.Join(sess.out.Lines(), "\n")

	if n := sess.in.Remaining(); n > 0 {
		result.Error = fmt.Errorf("%d answers were never read", n)
		result.Duration = time.Since(start)
		return result
	}

	if err := r.checkExpectations(step.Expectations, sess); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkExpectations validates the test expectations against the session
func (r *Runner) checkExpectations(exp Expectations, sess *session) error {
	ps := sess.ps

	if exp.Location != nil {
		if string(sess.loc) != *exp.Location {
			return fmt.Errorf("expected location %s, got %s", *exp.Location, sess.loc)
		}
	}

	if exp.Currency != nil {
		if ps.Currency != *exp.Currency {
			return fmt.Errorf("expected currency %d, got %d", *exp.Currency, ps.Currency)
		}
	}

	// Full inventory check (order independent)
	if len(exp.Inventory) > 0 {
		for _, want := range exp.Inventory {
			if !ps.Has(state.Item(want)) {
				return fmt.Errorf("expected inventory to contain '%s', but it's missing. Actual inventory: %v", want, ps.Items)
			}
		}
		for _, have := range ps.Items {
			if !slices.Contains(exp.Inventory, string(have)) {
				return fmt.Errorf("inventory contains unexpected item '%s'. Expected inventory: %v, Actual: %v", have, exp.Inventory, ps.Items)
			}
		}
	}
	if exp.NoItems && len(ps.Items) > 0 {
		return fmt.Errorf("expected empty inventory, got %v", ps.Items)
	}

	for name, want := range exp.Flags {
		got, set := ps.Flag(state.Flag(name))
		if !set {
			return fmt.Errorf("expected flag %s to be set, but it isn't", name)
		}
		if got != want {
			return fmt.Errorf("expected flag %s to be %t, got %t", name, want, got)
		}
	}
	for _, name := range exp.Unset {
		if ps.FlagSet(state.Flag(name)) {
			return fmt.Errorf("expected flag %s to be unset", name)
		}
	}

	if exp.IsEnded != nil {
		if sess.ended != *exp.IsEnded {
			return fmt.Errorf("expected is_ended to be %t, got %t", *exp.IsEnded, sess.ended)
		}
	}

	lines := sess.out.Lines()
	output := strings.Join(lines, "\n")
	for _, expectedText := range exp.OutputContains {
		if !strings.Contains(output, expectedText) {
			return fmt.Errorf("expected output to contain '%s', but it didn't", expectedText)
		}
	}
	for _, unexpectedText := range exp.OutputNotContains {
		if strings.Contains(output, unexpectedText) {
			return fmt.Errorf("expected output to NOT contain '%s', but it did", unexpectedText)
		}
	}

	if exp.OutputRegex != "" {
		matched, err := regexp.MatchString(exp.OutputRegex, output)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("output didn't match regex pattern: %s", exp.OutputRegex)
		}
	}

	if len(exp.NoticeContains) > 0 {
		var notices []string
		for _, ev := range sess.out.Events() {
			if ev.Kind == engine.EventNotice {
				notices = append(notices, ev.Text)
			}
		}
		joined := strings.Join(notices, "\n")
		for _, expectedText := range exp.NoticeContains {
			if !strings.Contains(joined, expectedText) {
				return fmt.Errorf("expected a notice containing '%s', got %q", expectedText, notices)
			}
		}
	}

	return nil
}

// answerQueue feeds each step's answers to prompts raised while it runs
type answerQueue struct {
	mu    sync.Mutex
	lines []string
}

var _ engine.Prompter = (*answerQueue)(nil)

func (q *answerQueue) Load(lines []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lines = slices.Clone(lines)
}

func (q *answerQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}

func (q *answerQueue) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.lines) == 0 {
		return "", io.EOF
	}
	line := q.lines[0]
	q.lines = q.lines[1:]
	return line, nil
}
