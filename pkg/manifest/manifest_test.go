package manifest

import (
	"testing"

	"github.com/pagelens/pagelens/models"
)

func TestBuild(t *testing.T) {
	reports := []*models.Report{
		{
			URL:       "https://example.com/a",
			Status:    models.StatusSuccess,
			Title:     "A",
			WordCount: 800,
			Quality:   models.QualityHigh,
			Features:  &models.FeatureSet{IsThin: false},
			Similar:   []models.SimilarityResult{{URL: "https://example.com/b"}},
			TopTerms:  []models.TermCount{{Term: "golang", Count: 10}, {Term: "pipelines", Count: 4}},
		},
		{
			URL:       "https://example.com/blocked",
			Status:    models.StatusFailed,
			ErrorType: models.ErrorTypeFetch,
			Reason:    "page appears blocked or is a placeholder",
		},
		{
			URL:       "https://example.com/c",
			Status:    models.StatusSuccess,
			WordCount: 300,
			Quality:   models.QualityLow,
			Features:  &models.FeatureSet{IsThin: true},
			TopTerms:  []models.TermCount{{Term: "golang", Count: 3}},
		},
	}
	paths := []string{"out/a.json", "", "out/c.json"}

	sum := Build(reports, paths)

	if sum.TotalURLs != 3 || sum.Successful != 2 || sum.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", sum.TotalURLs, sum.Successful, sum.Failed)
	}
	if len(sum.Results) != 3 {
		t.Fatalf("Results has %d entries, want 3", len(sum.Results))
	}

	if sum.Results[0].FilePath != "out/a.json" || sum.Results[0].SimilarPages != 1 {
		t.Errorf("Results[0] = %+v", sum.Results[0])
	}
	if sum.Results[1].Reason == "" || sum.Results[1].ErrorType != models.ErrorTypeFetch {
		t.Errorf("failed entry lost its error details: %+v", sum.Results[1])
	}
	if !sum.Results[2].IsThin {
		t.Error("Results[2].IsThin = false, want true")
	}

	// golang appears in both successful reports: 10 + 3.
	if len(sum.AggregateTerms) == 0 {
		t.Fatal("AggregateTerms is empty")
	}
	if top := sum.AggregateTerms[0]; top.Term != "golang" || top.Count != 13 {
		t.Errorf("AggregateTerms[0] = %+v, want {golang 13}", top)
	}
}
