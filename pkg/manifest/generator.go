package manifest

import (
	"fmt"
	"time"

	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/analytics"
	"github.com/pagelens/pagelens/pkg/storage"
)

// aggregateTermCount caps the cross-page term list in the summary.
const aggregateTermCount = 25

// Build assembles a Summary from finished reports and the file paths
// they were exported to. paths[i] belongs to reports[i]; an empty
// path means the report was not written (failed analyses).
func Build(reports []*models.Report, paths []string) Summary {
	summary := Summary{
		GeneratedAt: time.Now().Format(time.RFC3339),
		TotalURLs:   len(reports),
		Results:     make([]PageSummary, 0, len(reports)),
	}

	termLists := make([][]models.TermCount, 0, len(reports))
	for i, r := range reports {
		page := PageSummary{
			URL:       r.URL,
			Status:    r.Status,
			Title:     r.Title,
			WordCount: r.WordCount,
			Quality:   r.Quality,
		}
		if i < len(paths) {
			page.FilePath = paths[i]
		}

		if r.Failed() {
			summary.Failed++
			page.ErrorType = r.ErrorType
			page.Reason = r.Reason
		} else {
			summary.Successful++
			page.SimilarPages = len(r.Similar)
			if r.Features != nil {
				page.IsThin = r.Features.IsThin
			}
			termLists = append(termLists, r.TopTerms)
		}

		summary.Results = append(summary.Results, page)
	}

	summary.AggregateTerms = analytics.TopTerms(analytics.SumTermCounts(termLists...), aggregateTermCount)
	return summary
}

// Write saves the summary into the store as summary-<date>.json and
// returns the path.
func Write(s *storage.Storage, summary Summary) (string, error) {
	name := fmt.Sprintf("summary-%s.json", time.Now().Format("2006-01-02"))
	path, err := s.SaveJSON(name, summary)
	if err != nil {
		return "", fmt.Errorf("failed to write batch summary: %w", err)
	}
	return path, nil
}
