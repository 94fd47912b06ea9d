package analyzer

import (
	"context"
	"sync"

	"github.com/pagelens/pagelens/models"
)

// job is one unit of batch work. The index pins the report to its
// position in the caller's request list.
type job struct {
	index int
	req   models.AnalyzeRequest
}

// AnalyzeBatch fans requests out to a bounded worker pool and returns
// one report per request, in input order. A failure on one URL never
// affects the others; callers inspect each report's status. The
// fetcher's courtesy delay is shared across workers, so total
// throughput stays polite regardless of the worker count.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reqs []models.AnalyzeRequest, workers int) []*models.Report {
	if len(reqs) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	a.logger.Info("starting batch analysis", "urls", len(reqs), "workers", workers)

	jobs := make(chan job, len(reqs))
	reports := make([]*models.Report, len(reqs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobs {
				a.logger.Debug("worker analyzing url", "worker_id", workerID, "url", j.req.URL)
				// Each worker writes only its own slots.
				reports[j.index] = a.Analyze(ctx, j.req)
			}
		}(w)
	}

	for i, req := range reqs {
		jobs <- job{index: i, req: req}
	}
	close(jobs)
	wg.Wait()

	return reports
}

// Requests wraps plain URLs in analyze requests that share one set of
// per-run options.
func Requests(urls []string, base models.AnalyzeRequest) []models.AnalyzeRequest {
	reqs := make([]models.AnalyzeRequest, len(urls))
	for i, url := range urls {
		req := base
		req.URL = url
		reqs[i] = req
	}
	return reqs
}

// CountFailed returns how many reports in a batch carry failed status.
func CountFailed(reports []*models.Report) int {
	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	return failed
}
