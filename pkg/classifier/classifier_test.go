package classifier

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagelens/pagelens/models"
)

func writeArtifact(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	return path
}

const validArtifact = `{
  "model_type": "random_forest",
  "feature_names": ["word_count", "sentence_count", "flesch_reading_ease"],
  "classes": ["Low", "Medium", "High"],
  "trees": [
    {
      "children_left":  [1, -1, 3, -1, -1],
      "children_right": [2, -1, 4, -1, -1],
      "feature":        [0, -2, 2, -2, -2],
      "threshold":      [500, 0, 50, 0, 0],
      "value": [[13, 13, 13], [12, 1, 0], [1, 12, 13], [1, 9, 2], [0, 3, 11]]
    }
  ]
}`

func TestLoad_ValidArtifact(t *testing.T) {
	m, err := Load(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(m.Classes) != 3 {
		t.Errorf("len(Classes) = %d, want 3", len(m.Classes))
	}
	if len(m.Trees) != 1 {
		t.Errorf("len(Trees) = %d, want 1", len(m.Trees))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}

func TestLoad_RejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "corrupt json",
			doc:     `{"feature_names": [`,
			wantErr: "failed to parse",
		},
		{
			name:    "wrong feature names",
			doc:     strings.Replace(validArtifact, `"sentence_count"`, `"is_thin"`, 1),
			wantErr: "feature schema mismatch",
		},
		{
			name:    "feature order swapped",
			doc:     strings.Replace(validArtifact, `"word_count", "sentence_count"`, `"sentence_count", "word_count"`, 1),
			wantErr: "feature schema mismatch",
		},
		{
			name:    "unknown class",
			doc:     strings.Replace(validArtifact, `"Medium"`, `"Mediocre"`, 1),
			wantErr: "unknown class",
		},
		{
			name:    "duplicate class",
			doc:     strings.Replace(validArtifact, `"Medium"`, `"Low"`, 1),
			wantErr: "duplicate class",
		},
		{
			name:    "no trees",
			doc:     `{"feature_names": ["word_count", "sentence_count", "flesch_reading_ease"], "classes": ["Low"], "trees": []}`,
			wantErr: "no trees",
		},
		{
			name:    "inconsistent node arrays",
			doc:     strings.Replace(validArtifact, `"children_left":  [1, -1, 3, -1, -1]`, `"children_left":  [1, -1, 3]`, 1),
			wantErr: "inconsistent node arrays",
		},
		{
			name:    "vote width mismatch",
			doc:     strings.Replace(validArtifact, `[12, 1, 0]`, `[12, 1]`, 1),
			wantErr: "class votes",
		},
		{
			name:    "child points backwards",
			doc:     strings.Replace(validArtifact, `"children_left":  [1, -1, 3, -1, -1]`, `"children_left":  [0, -1, 3, -1, -1]`, 1),
			wantErr: "out-of-order children",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeArtifact(t, tt.doc))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPredict_WalksTree(t *testing.T) {
	m, err := Load(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		fs   models.FeatureSet
		want models.QualityLabel
	}{
		{"short page", models.FeatureSet{WordCount: 300, SentenceCount: 20, Readability: 70}, models.QualityLow},
		{"boundary goes left", models.FeatureSet{WordCount: 500, SentenceCount: 25, Readability: 70}, models.QualityLow},
		{"long but dense", models.FeatureSet{WordCount: 800, SentenceCount: 30, Readability: 40}, models.QualityMedium},
		{"long and readable", models.FeatureSet{WordCount: 800, SentenceCount: 40, Readability: 80}, models.QualityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Predict(tt.fs); got != tt.want {
				t.Errorf("Predict(%+v) = %q, want %q", tt.fs, got, tt.want)
			}
		})
	}
}

// constTree builds a single-leaf tree that always votes the same way.
func constTree(votes ...float64) Tree {
	return Tree{
		ChildrenLeft:  []int{-1},
		ChildrenRight: []int{-1},
		Feature:       []int{leafMarker},
		Threshold:     []float64{0},
		Value:         [][]float64{votes},
	}
}

func TestPredict_MajorityVote(t *testing.T) {
	m := &Model{
		FeatureNames: RequiredFeatures,
		Classes:      []models.QualityLabel{models.QualityLow, models.QualityMedium, models.QualityHigh},
		Trees: []Tree{
			constTree(9, 0, 1),
			constTree(0, 0, 10),
			constTree(1, 2, 7),
		},
	}

	if got := m.Predict(models.FeatureSet{}); got != models.QualityHigh {
		t.Errorf("Predict() = %q, want %q (two of three trees vote High)", got, models.QualityHigh)
	}
}

func TestPredict_TieGoesToFirstListedClass(t *testing.T) {
	m := &Model{
		FeatureNames: RequiredFeatures,
		Classes:      []models.QualityLabel{models.QualityLow, models.QualityMedium, models.QualityHigh},
		Trees: []Tree{
			constTree(0, 0, 10),
			constTree(10, 0, 0),
		},
	}

	if got := m.Predict(models.FeatureSet{}); got != models.QualityLow {
		t.Errorf("Predict() = %q, want %q on a split vote", got, models.QualityLow)
	}
}
