package pipeline

import (
	"sync"

	"github.com/backmassage/pdfarc/internal/display"
	"github.com/backmassage/pdfarc/internal/ghostscript"
	"github.com/backmassage/pdfarc/internal/logging"
)

// BatchProgress holds the batch counters. Owned exclusively by the
// Reporter; each task updates it exactly once, at its terminal state.
type BatchProgress struct {
	Total     int
	Completed int
	Succeeded int
	Failed    int
	Unrouted  int // Routing errors: source left in place for a future run.
}

// Reporter maintains the "i of N" counter and emits one line per completed
// task on the progress channel. Failure detail (captured stderr, failure
// kind, task ID) goes to the diagnostic channel only. Indices reflect
// completion order and are strictly increasing 1..N.
type Reporter struct {
	mu     sync.Mutex
	log    *logging.Logger
	dryRun bool
	prog   BatchProgress
}

// NewReporter returns a Reporter for a batch of total tasks.
func NewReporter(log *logging.Logger, total int, dryRun bool) *Reporter {
	return &Reporter{
		log:    log,
		dryRun: dryRun,
		prog:   BatchProgress{Total: total},
	}
}

// Report records one task's terminal state and emits its progress line.
// routeErr, when non-nil, supersedes the outcome class: the source could
// not be relocated and stays in the input root.
func (rp *Reporter) Report(task FileTask, oc ghostscript.Outcome, res RouteResult, routeErr error) {
	rp.mu.Lock()
	defer rp.mu.Unlock()

	rp.prog.Completed++
	i, n := rp.prog.Completed, rp.prog.Total

	switch {
	case routeErr != nil:
		rp.prog.Unrouted++
		rp.log.Error("[%d/%d] %s: not routed, left in place: %v", i, n, task.RelPath, routeErr)
		rp.log.Trace("task %s (%s): route error: %v", task.ID, task.RelPath, routeErr)

	case !oc.Failed():
		rp.prog.Succeeded++
		if rp.dryRun {
			rp.log.Success("[%d/%d] %s: [DRY] would convert", i, n, task.RelPath)
		} else {
			rp.log.Success("[%d/%d] %s: converted (%s)", i, n, task.RelPath, display.FormatPages(oc.PageCount))
		}

	default:
		rp.prog.Failed++
		rp.log.Warn("[%d/%d] %s: failed (%s), original moved to failed root", i, n, task.RelPath, oc.Kind)
		rp.log.Trace("task %s (%s): %s failure:\n%s", task.ID, task.RelPath, oc.Kind, oc.Detail)
	}
}

// Progress returns a copy of the counters.
func (rp *Reporter) Progress() BatchProgress {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.prog
}
