// Package agent runs the multi-step content-analysis pipeline: a fixed set
// of model calls over one job's content, assembled into a single combined
// output with per-step status reporting.
package agent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmtong/talentpipe/internal/cache"
	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/prompts"
	"github.com/jmtong/talentpipe/internal/schemas"
	"github.com/jmtong/talentpipe/internal/types"
)

// ProgressEvent reports a step status change during a pipeline run.
type ProgressEvent struct {
	Step     string     `json:"step"`
	Status   StepStatus `json:"status"`
	Progress int        `json:"progress"`
}

// ProgressCallback is invoked on every step status change. Callers may
// render step state at any time during the run.
type ProgressCallback func(event ProgressEvent)

// OutputStore is the persistence surface the runner needs. *db.DB satisfies
// it; tests substitute fakes.
type OutputStore interface {
	UpsertAgentOutput(ctx context.Context, output *types.AgentOutput) error
	GetAgentOutputByJob(ctx context.Context, jobID uuid.UUID) (*types.AgentOutput, error)
}

// Options configures a Runner.
type Options struct {
	LLM   llm.Client
	Cache *cache.Store // required: display-ready results land here first
	Store OutputStore  // optional: nil runs without persistence
	// Parallel fans the steps out concurrently. The steps are independent,
	// so this only changes latency; the per-step status contract holds
	// either way. Sequential is the default so step n+1 never starts
	// before step n completes.
	Parallel   bool
	OnProgress ProgressCallback
}

// Runner executes the analysis pipeline.
type Runner struct {
	opts Options
}

// NewRunner creates a pipeline runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.LLM == nil {
		return nil, fmt.Errorf("an LLM client is required")
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("a result cache is required")
	}
	return &Runner{opts: opts}, nil
}

// Result separates the two completion signals of a run: Output is display-
// ready as soon as Process returns (already written to the cache), while
// Saved reports the background persistence write. A caller that must know
// the row is durable waits on Saved; one that only renders does not.
type Result struct {
	Output *types.AgentOutput
	Steps  []Step
	Saved  <-chan error
}

// Fingerprint returns the content fingerprint used to detect re-runs over
// unchanged input.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Process runs the pipeline for one job's content.
//
// Each step transitions pending -> processing -> complete, or to error on
// failure, in which case the remaining steps stay pending, the run aborts,
// and the returned Result carries the partial step snapshot with no Output.
// When the store already holds an output whose fingerprint matches the
// content, the stored output is returned without invoking the model.
func (r *Runner) Process(ctx context.Context, jobID uuid.UUID, content string) (*Result, error) {
	fingerprint := Fingerprint(content)

	if r.opts.Store != nil {
		existing, err := r.opts.Store.GetAgentOutputByJob(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing output: %w", err)
		}
		if existing != nil && existing.Fingerprint == fingerprint {
			r.opts.Cache.SetOutput(jobID, existing)
			return &Result{
				Output: existing,
				Steps:  completedSteps(),
				Saved:  savedImmediately(),
			}, nil
		}
	}

	run := newRun(r.opts.OnProgress)

	output := &types.AgentOutput{
		ID:          uuid.New(),
		JobID:       jobID,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}

	var runErr error
	if r.opts.Parallel {
		runErr = r.runParallel(ctx, run, output, content)
	} else {
		runErr = r.runSequential(ctx, run, output, content)
	}
	if runErr != nil {
		// A failed run still reports how far it got: the failing step
		// carries error status and later steps stay pending.
		return &Result{Steps: run.snapshot()}, runErr
	}

	// Display-ready: the cache write is synchronous so the caller can render
	// immediately, before the database row is confirmed.
	r.opts.Cache.SetOutput(jobID, output)

	saved := make(chan error, 1)
	if r.opts.Store == nil {
		saved <- nil
		close(saved)
	} else {
		store := r.opts.Store
		// The save must outlive a caller that cancels right after rendering.
		saveCtx := context.WithoutCancel(ctx)
		go func() {
			saved <- store.UpsertAgentOutput(saveCtx, output)
			close(saved)
		}()
	}

	return &Result{
		Output: output,
		Steps:  run.snapshot(),
		Saved:  saved,
	}, nil
}

// runSequential executes the steps strictly in order, awaiting each before
// starting the next.
func (r *Runner) runSequential(ctx context.Context, run *runState, output *types.AgentOutput, content string) error {
	for i, def := range stepDefs {
		if err := r.executeStep(ctx, run, i, def, output, content); err != nil {
			return err
		}
	}
	return nil
}

// runParallel fans all steps out at once and joins on the first failure.
func (r *Runner) runParallel(ctx context.Context, run *runState, output *types.AgentOutput, content string) error {
	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for i, def := range stepDefs {
		g.Go(func() error {
			var partial types.AgentOutput
			if err := r.executeStep(gCtx, run, i, def, &partial, content); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return def.assignFrom(output, &partial)
		})
	}

	return g.Wait()
}

// executeStep renders the step's prompt, invokes the model, validates the
// response, and records the step's resulting field on output.
func (r *Runner) executeStep(ctx context.Context, run *runState, idx int, def stepDef, output *types.AgentOutput, content string) error {
	run.setStatus(idx, StatusProcessing, 25)

	tmpl, err := prompts.Get("analysis.json", def.templateKey)
	if err != nil {
		run.setStatus(idx, StatusError, 0)
		return fmt.Errorf("step %s: %w", def.name, err)
	}

	prompt := tmpl.Render(map[string]string{"content": content})

	raw, err := r.opts.LLM.GenerateJSON(ctx, prompt, def.tier)
	if err != nil {
		run.setStatus(idx, StatusError, 0)
		return fmt.Errorf("step %s failed: %w", def.name, err)
	}

	doc := llm.ExtractJSONObject(raw)
	if err := schemas.Validate(def.schema, doc); err != nil {
		run.setStatus(idx, StatusError, 0)
		return fmt.Errorf("step %s returned malformed response: %w", def.name, err)
	}

	if err := def.assign(output, doc); err != nil {
		run.setStatus(idx, StatusError, 0)
		return fmt.Errorf("step %s: %w", def.name, err)
	}

	run.setStatus(idx, StatusComplete, 100)
	return nil
}

// assignFrom copies the step's field from a partial output into the
// combined one. Each step writes a disjoint field, so the copy needs no
// merging logic.
func (d stepDef) assignFrom(dst, src *types.AgentOutput) error {
	switch d.name {
	case StepExtractTerms:
		dst.Terms = src.Terms
	case StepAnalyzeCompensation:
		dst.CompensationAnalysis = src.CompensationAnalysis
	case StepEnhanceDescription:
		dst.EnhancedDescription = src.EnhancedDescription
	case StepSummarize:
		dst.JobSummary = src.JobSummary
	default:
		return fmt.Errorf("unknown step %s", d.name)
	}
	return nil
}

// runState tracks per-step status for one run. Mutations go through
// setStatus so the progress callback observes every transition, including
// from concurrently executing steps.
type runState struct {
	mu         sync.Mutex
	steps      []Step
	onProgress ProgressCallback
}

func newRun(onProgress ProgressCallback) *runState {
	steps := make([]Step, len(stepDefs))
	for i, def := range stepDefs {
		steps[i] = Step{Name: def.name, Status: StatusPending, Progress: 0}
	}
	return &runState{steps: steps, onProgress: onProgress}
}

func (s *runState) setStatus(idx int, status StepStatus, progress int) {
	s.mu.Lock()
	s.steps[idx].Status = status
	s.steps[idx].Progress = progress
	event := ProgressEvent{Step: s.steps[idx].Name, Status: status, Progress: progress}
	callback := s.onProgress
	s.mu.Unlock()

	if callback != nil {
		callback(event)
	}
}

// snapshot returns a copy of the current step states.
func (s *runState) snapshot() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Step(nil), s.steps...)
}

func completedSteps() []Step {
	steps := make([]Step, len(stepDefs))
	for i, def := range stepDefs {
		steps[i] = Step{Name: def.name, Status: StatusComplete, Progress: 100}
	}
	return steps
}

func savedImmediately() <-chan error {
	saved := make(chan error, 1)
	saved <- nil
	close(saved)
	return saved
}
