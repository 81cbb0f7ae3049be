package colorkey

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one job in a batch. Exactly one of Result and
// Err is set.
type BatchItem struct {
	Job    Job
	Result *FileResult
	Err    error
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Succeeded int
	Failed    int
}

// Summarize counts successes and failures in items.
func Summarize(items []BatchItem) BatchSummary {
	var s BatchSummary
	for _, it := range items {
		if it.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// ProcessBatch runs jobs concurrently with at most workers in flight
// (workers < 1 means runtime.NumCPU()). Items come back in job order.
//
// A failing job does not stop the others; its error is recorded on its item.
// Jobs resolving to a destination already claimed by an earlier job (a.png and
// a.jpg both mapping to a_transparent.png) fail with ErrOutputConflict.
// Cancelling ctx stops jobs that have not started yet, which then carry the
// context error, and ProcessBatch returns ctx.Err().
func (p *Processor) ProcessBatch(ctx context.Context, jobs []Job, workers int) ([]BatchItem, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	items := make([]BatchItem, len(jobs))
	eg := new(errgroup.Group)
	eg.SetLimit(workers)

	p.logger.Info("starting batch", "jobs", len(jobs), "workers", workers)

	claimed := make(map[string]string, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		items[i].Job = job

		out := filepath.Clean(p.OutputPath(job))
		if prev, ok := claimed[out]; ok {
			p.logger.Warn("output conflict", "source", job.Source, "output", out, "claimed_by", prev)
			items[i].Err = &WriteError{Path: out, Err: ErrOutputConflict}
			continue
		}
		claimed[out] = job.Source

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			res, err := p.Process(ctx, job)
			if err != nil {
				p.logger.Warn("background removal failed", "source", job.Source, "error", err)
				items[i].Err = err
				return nil
			}
			items[i].Result = res
			return nil
		})
	}
	_ = eg.Wait()

	sum := Summarize(items)
	p.logger.Info("batch finished", "succeeded", sum.Succeeded, "failed", sum.Failed)

	return items, ctx.Err()
}
