package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/alfandoo/Attrition-Predict/internal/schemas"
	embedded "github.com/alfandoo/Attrition-Predict/schemas"
)

const leaf = -1

// Tree holds one fitted decision tree in the flat array layout scikit-learn uses:
// node i splits on Feature[i] at Threshold[i] and is a leaf when ChildrenLeft[i] == -1.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Artifact is the on-disk form of a random forest classifier.
type Artifact struct {
	Format       string   `json:"format"`
	NFeatures    int      `json:"n_features"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Classes      []int    `json:"classes"`
	Trees        []Tree   `json:"trees"`
}

// Forest is a random forest classifier. It is immutable after loading and safe for
// concurrent use.
type Forest struct {
	nFeatures    int
	featureNames []string
	classes      []int
	trees        []Tree
}

// LoadForest reads and validates a forest artifact from path.
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	f, err := ParseForest(data)
	if err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", path, err)
	}
	return f, nil
}

// ParseForest validates data against the forest schema and its structural invariants.
func ParseForest(data []byte) (*Forest, error) {
	if err := schemas.Validate(embedded.ForestModel, data); err != nil {
		return nil, err
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := a.check(); err != nil {
		return nil, err
	}

	return &Forest{
		nFeatures:    a.NFeatures,
		featureNames: a.FeatureNames,
		classes:      a.Classes,
		trees:        a.Trees,
	}, nil
}

func (a *Artifact) check() error {
	if len(a.FeatureNames) > 0 && len(a.FeatureNames) != a.NFeatures {
		return fmt.Errorf("feature_names has %d entries, n_features is %d", len(a.FeatureNames), a.NFeatures)
	}
	for t, tree := range a.Trees {
		n := len(tree.ChildrenLeft)
		if len(tree.ChildrenRight) != n || len(tree.Feature) != n || len(tree.Threshold) != n || len(tree.Value) != n {
			return fmt.Errorf("tree %d: node arrays differ in length", t)
		}
		for i := 0; i < n; i++ {
			if len(tree.Value[i]) != len(a.Classes) {
				return fmt.Errorf("tree %d node %d: value has %d entries, want %d", t, i, len(tree.Value[i]), len(a.Classes))
			}
			l, r := tree.ChildrenLeft[i], tree.ChildrenRight[i]
			if (l == leaf) != (r == leaf) {
				return fmt.Errorf("tree %d node %d: only one child set", t, i)
			}
			if l == leaf {
				if floats.Sum(tree.Value[i]) <= 0 {
					return fmt.Errorf("tree %d node %d: leaf has no samples", t, i)
				}
				continue
			}
			// children always come after their parent, which also rules out cycles
			if l <= i || l >= n || r <= i || r >= n {
				return fmt.Errorf("tree %d node %d: child index out of range", t, i)
			}
			if f := tree.Feature[i]; f < 0 || f >= a.NFeatures {
				return fmt.Errorf("tree %d node %d: feature %d out of range", t, i, f)
			}
		}
	}
	return nil
}

// NumFeatures implements Classifier.
func (f *Forest) NumFeatures() int { return f.nFeatures }

// Classes implements Classifier.
func (f *Forest) Classes() []int { return slices.Clone(f.classes) }

// FeatureNames returns the training column names, if the artifact recorded them.
func (f *Forest) FeatureNames() []string { return slices.Clone(f.featureNames) }

// Trees returns the number of estimators.
func (f *Forest) Trees() int { return len(f.trees) }

// Nodes returns the total node count across all trees.
func (f *Forest) Nodes() int {
	n := 0
	for i := range f.trees {
		n += len(f.trees[i].ChildrenLeft)
	}
	return n
}

// PredictProba averages the normalized leaf distributions of every tree.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.nFeatures {
		return nil, &FeatureCountError{Got: len(x), Want: f.nFeatures}
	}

	proba := make([]float64, len(f.classes))
	dist := make([]float64, len(f.classes))
	for i := range f.trees {
		copy(dist, f.trees[i].leafValue(x))
		floats.Scale(1/floats.Sum(dist), dist)
		floats.Add(proba, dist)
	}
	floats.Scale(1/float64(len(f.trees)), proba)
	return proba, nil
}

// Predict returns the class with the highest mean probability; ties go to the first class.
func (f *Forest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return f.classes[floats.MaxIdx(proba)], nil
}

// leafValue walks the tree. Inputs are compared at float32 precision because the
// forest was fitted on float32 matrices.
func (t *Tree) leafValue(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if float64(float32(x[t.Feature[node]])) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}
