package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/systree-xyz/go-systree/runlog"
)

// Runner executes level-grouped plans. Each run gets its own label
// namespace so repeated runs of one plan stay distinguishable in logs
// and audit records.
type Runner struct {
	rng   *rand.Rand
	store runlog.Store

	// Time source (for testing)
	now func() time.Time
}

// Report describes one completed or aborted run.
type Report struct {
	RunID    string
	Labels   []string
	Started  time.Time
	Finished time.Time
}

// NewRunner creates a runner drawing label slugs from rng. A nil rng
// falls back to a time-seeded source.
func NewRunner(rng *rand.Rand) *Runner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Runner{rng: rng, now: time.Now}
}

// WithStore attaches an audit store; every run appends its events there.
func (r *Runner) WithStore(store runlog.Store) *Runner {
	r.store = store
	return r
}

// WithTimeSource sets a custom time source (useful for testing).
func (r *Runner) WithTimeSource(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run executes the plan level by level. Systems within a level run
// concurrently; the first error aborts the run after the current level
// drains. The report is returned even on error so callers can see how
// far the run got.
func (r *Runner) Run(ctx context.Context, w *World, plan Plan) (*Report, error) {
	report := &Report{
		RunID:   fmt.Sprintf("run_%s", slug(r.rng, 6)),
		Started: r.now(),
	}
	ns := slug(r.rng, 6)
	for i := range plan {
		report.Labels = append(report.Labels, fmt.Sprintf("__startup_tree_%s_layer_%d", ns, i))
	}

	if err := r.record(ctx, report, "run_started", map[string]string{
		"levels": fmt.Sprintf("%d", len(plan)),
	}); err != nil {
		return report, err
	}

	for i, level := range plan {
		if err := r.record(ctx, report, "layer_started", map[string]string{
			"label": report.Labels[i],
			"size":  fmt.Sprintf("%d", len(level)),
		}); err != nil {
			return report, err
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, sys := range level {
			sys := sys
			g.Go(func() error {
				return sys(gctx, w)
			})
		}
		if err := g.Wait(); err != nil {
			report.Finished = r.now()
			return report, fmt.Errorf("layer %d: %w", i, err)
		}

		if err := r.record(ctx, report, "layer_completed", map[string]string{
			"label": report.Labels[i],
		}); err != nil {
			return report, err
		}
	}

	report.Finished = r.now()
	return report, r.record(ctx, report, "run_finished", nil)
}

func (r *Runner) record(ctx context.Context, report *Report, typ string, data map[string]string) error {
	if r.store == nil {
		return nil
	}
	ev, err := runlog.NewEvent(report.RunID, typ, data)
	if err != nil {
		return err
	}
	version, err := r.store.StreamVersion(ctx, report.RunID)
	if err != nil {
		return err
	}
	_, err = r.store.Append(ctx, report.RunID, version, []*runlog.Event{ev})
	return err
}

const slugChars = "abcdefghijklmnopqrstuvwxyz0123456789"

func slug(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugChars[rng.Intn(len(slugChars))]
	}
	return string(b)
}
