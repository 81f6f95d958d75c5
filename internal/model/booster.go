package model

import (
	"fmt"
	"math"
)

// Node is one decision node in a regression tree, array-encoded: Left and
// Right index into the tree's node slice. Leaves carry the margin
// contribution in Leaf.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      float64 `json:"leaf"`
	IsLeaf    bool    `json:"is_leaf"`
}

// Tree is one boosting round's regression tree for a single class.
type Tree struct {
	Class int    `json:"class"`
	Nodes []Node `json:"nodes"`
}

// Score traverses the tree for the given feature vector and returns the leaf
// value. Feature values below the threshold go left.
func (t *Tree) Score(features []float64) float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.IsLeaf {
			return node.Leaf
		}
		if features[node.Feature] < node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// Booster is a multiclass gradient-boosted tree ensemble with softmax output.
// The per-class margin is BaseScore plus the sum of that class's tree leaves.
type Booster struct {
	NumClasses int     `json:"num_classes"`
	BaseScore  float64 `json:"base_score"`
	Trees      []Tree  `json:"trees"`
}

// Margins returns the raw per-class scores for a feature vector.
func (b *Booster) Margins(features []float64) []float64 {
	margins := make([]float64, b.NumClasses)
	for i := range margins {
		margins[i] = b.BaseScore
	}
	for i := range b.Trees {
		t := &b.Trees[i]
		margins[t.Class] += t.Score(features)
	}
	return margins
}

// PredictProba returns the softmax class probability distribution.
func (b *Booster) PredictProba(features []float64) ([]float64, error) {
	if b.NumClasses < 2 {
		return nil, fmt.Errorf("booster has %d classes, need at least 2", b.NumClasses)
	}
	if err := b.checkFeatureDim(len(features)); err != nil {
		return nil, err
	}

	margins := b.Margins(features)

	// Softmax with max subtraction for numeric stability.
	maxMargin := margins[0]
	for _, m := range margins[1:] {
		if m > maxMargin {
			maxMargin = m
		}
	}
	var sum float64
	probs := make([]float64, len(margins))
	for i, m := range margins {
		probs[i] = math.Exp(m - maxMargin)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Predict returns the arg-max class index of the probability distribution.
// Ties break to the lowest class index; the probability vector is the single
// source of the predicted class, so prediction and confidence always agree.
func (b *Booster) Predict(features []float64) (int, error) {
	probs, err := b.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return Argmax(probs), nil
}

// Argmax returns the index of the largest value, lowest index on ties.
func Argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// checkFeatureDim verifies every tree references only valid feature indices.
func (b *Booster) checkFeatureDim(dim int) error {
	for i := range b.Trees {
		for _, n := range b.Trees[i].Nodes {
			if !n.IsLeaf && n.Feature >= dim {
				return fmt.Errorf("tree %d references feature %d, vector has %d", i, n.Feature, dim)
			}
		}
	}
	return nil
}

// Validate checks structural consistency of the ensemble.
func (b *Booster) Validate(featureCount int) error {
	if b.NumClasses < 2 {
		return fmt.Errorf("num_classes must be >= 2, got %d", b.NumClasses)
	}
	for i := range b.Trees {
		t := &b.Trees[i]
		if t.Class < 0 || t.Class >= b.NumClasses {
			return fmt.Errorf("tree %d targets class %d outside [0,%d)", i, t.Class, b.NumClasses)
		}
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", i)
		}
		for j, n := range t.Nodes {
			if n.IsLeaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= featureCount {
				return fmt.Errorf("tree %d node %d references feature %d outside [0,%d)", i, j, n.Feature, featureCount)
			}
			if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d has child index out of range", i, j)
			}
		}
	}
	return nil
}
