package skill

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

const (
	// numTrees and maxTreeDepth bound the ensemble size.
	numTrees     = 100
	maxTreeDepth = 10
)

// Forest is a random forest classifier over skill labels. Each tree is
// grown on a bootstrap sample with balanced class weights and a random
// feature subset per split.
type Forest struct {
	Trees   []*treeNode       `json:"trees"`
	Classes []telemetry.Label `json:"classes"`
}

// TrainForest fits a forest on scaled feature rows and their labels.
// The rng drives bootstrap sampling and feature selection, so a fixed
// seed yields an identical forest.
func TrainForest(rows [][]float64, labels []telemetry.Label, rng *rand.Rand) (*Forest, error) {
	if len(rows) == 0 || len(rows) != len(labels) {
		return nil, fmt.Errorf("skill: cannot train forest on %d rows with %d labels", len(rows), len(labels))
	}

	classes := append([]telemetry.Label(nil), telemetry.Labels...)
	classIndex := make(map[telemetry.Label]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	y := make([]int, len(labels))
	counts := make([]float64, len(classes))
	for i, label := range labels {
		ci, ok := classIndex[label]
		if !ok {
			return nil, fmt.Errorf("skill: cannot train forest: unknown label %q", label)
		}
		y[i] = ci
		counts[ci]++
	}

	// Balanced class weights: n_samples / (n_classes * count(class)).
	// Rare classes weigh more so the majority tier cannot drown them out.
	present := 0
	for _, c := range counts {
		if c > 0 {
			present++
		}
	}
	weights := make([]float64, len(classes))
	for ci, c := range counts {
		if c > 0 {
			weights[ci] = float64(len(rows)) / (float64(present) * c)
		}
	}

	featuresPerSplit := int(math.Sqrt(float64(len(rows[0]))))
	if featuresPerSplit < 1 {
		featuresPerSplit = 1
	}

	forest := &Forest{
		Trees:   make([]*treeNode, numTrees),
		Classes: classes,
	}
	for t := 0; t < numTrees; t++ {
		boot := make([]int, len(rows))
		for i := range boot {
			boot[i] = rng.Intn(len(rows))
		}
		forest.Trees[t] = growTree(rows, y, weights, boot, len(classes), 0, maxTreeDepth, featuresPerSplit, rng)
	}
	return forest, nil
}

// Proba returns the class probability distribution for a scaled
// feature row, averaged over all trees.
func (f *Forest) Proba(row []float64) map[telemetry.Label]float64 {
	sum := make([]float64, len(f.Classes))
	for _, tree := range f.Trees {
		for i, p := range tree.predict(row) {
			sum[i] += p
		}
	}
	out := make(map[telemetry.Label]float64, len(f.Classes))
	for i, c := range f.Classes {
		out[c] = sum[i] / float64(len(f.Trees))
	}
	return out
}

// Predict returns the most probable class for a scaled feature row.
func (f *Forest) Predict(row []float64) telemetry.Label {
	proba := f.Proba(row)
	best := f.Classes[0]
	for _, c := range f.Classes[1:] {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return best
}

// Score returns the fraction of rows whose prediction matches the
// given labels.
func (f *Forest) Score(rows [][]float64, labels []telemetry.Label) float64 {
	if len(rows) == 0 {
		return 0
	}
	correct := 0
	for i, row := range rows {
		if f.Predict(row) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows))
}

func (f *Forest) valid() bool {
	return f != nil && len(f.Trees) > 0 && len(f.Classes) > 0
}
