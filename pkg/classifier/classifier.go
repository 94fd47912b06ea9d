// Package classifier applies a pre-trained decision forest to a
// page's numeric features. The artifact is produced by an external
// training pipeline; this package only loads, validates and applies it.
package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pagelens/pagelens/models"
)

// RequiredFeatures is the exact model input schema, in column order.
// An artifact trained on anything else is rejected at load.
var RequiredFeatures = []string{"word_count", "sentence_count", "flesch_reading_ease"}

// leafMarker is how exported trees flag leaf nodes in the feature array.
const leafMarker = -2

// Model is a pre-trained decision forest for content quality.
// Loaded once at startup and read-only afterwards, so concurrent
// Predict calls are safe.
type Model struct {
	ModelType    string                `json:"model_type"`
	FeatureNames []string              `json:"feature_names"`
	Classes      []models.QualityLabel `json:"classes"`
	Trees        []Tree                `json:"trees"`
}

// Tree is one estimator in flattened array form: node i branches to
// ChildrenLeft[i] when x[Feature[i]] <= Threshold[i], and leaves carry
// leafMarker in Feature with per-class vote counts in Value.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Load reads and validates a model artifact. Any failure here is a
// process-level precondition failure: callers must treat it as fatal,
// not as a per-request condition.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return &m, nil
}

// Predict classifies a feature set. Only the three trained columns
// are consulted; the thin-content flag is a separate heuristic signal
// and never reaches the model.
func (m *Model) Predict(fs models.FeatureSet) models.QualityLabel {
	x := [3]float64{float64(fs.WordCount), float64(fs.SentenceCount), fs.Readability}

	votes := make([]int, len(m.Classes))
	for i := range m.Trees {
		votes[m.Trees[i].predictClass(x)]++
	}

	// Ties go to the first-listed class.
	best := 0
	for i, v := range votes {
		if v > votes[best] {
			best = i
		}
	}
	return m.Classes[best]
}

// predictClass walks the tree to a leaf and returns the index of the
// winning class there.
func (t *Tree) predictClass(x [3]float64) int {
	node := 0
	for t.Feature[node] != leafMarker {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}

	counts := t.Value[node]
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}

func (m *Model) validate() error {
	if len(m.FeatureNames) != len(RequiredFeatures) {
		return fmt.Errorf("feature schema mismatch: artifact has %v, need %v", m.FeatureNames, RequiredFeatures)
	}
	for i, name := range RequiredFeatures {
		if m.FeatureNames[i] != name {
			return fmt.Errorf("feature schema mismatch at column %d: artifact has %q, need %q", i, m.FeatureNames[i], name)
		}
	}

	if len(m.Classes) == 0 {
		return fmt.Errorf("artifact declares no classes")
	}
	seen := make(map[models.QualityLabel]bool, len(m.Classes))
	for _, c := range m.Classes {
		if !c.Valid() {
			return fmt.Errorf("unknown class %q (known: %v)", c, models.KnownLabels)
		}
		if seen[c] {
			return fmt.Errorf("duplicate class %q", c)
		}
		seen[c] = true
	}

	if len(m.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(len(m.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// validate checks a tree's arrays are consistent and that every
// branch strictly advances, which guarantees the walk terminates.
func (t *Tree) validate(classCount int) error {
	n := len(t.Feature)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("inconsistent node arrays (feature=%d left=%d right=%d threshold=%d value=%d)",
			n, len(t.ChildrenLeft), len(t.ChildrenRight), len(t.Threshold), len(t.Value))
	}

	for i := 0; i < n; i++ {
		if len(t.Value[i]) != classCount {
			return fmt.Errorf("node %d carries %d class votes, want %d", i, len(t.Value[i]), classCount)
		}
		if t.Feature[i] == leafMarker {
			continue
		}
		if t.Feature[i] < 0 || t.Feature[i] >= len(RequiredFeatures) {
			return fmt.Errorf("node %d references feature index %d", i, t.Feature[i])
		}
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d has out-of-order children %d/%d", i, l, r)
		}
	}
	return nil
}
