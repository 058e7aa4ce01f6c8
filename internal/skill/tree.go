package skill

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a classification tree. Leaves carry the
// weighted class distribution of the training samples that reached
// them; internal nodes route on Feature <= Threshold.
type treeNode struct {
	Feature   int       `json:"f,omitempty"`
	Threshold float64   `json:"t,omitempty"`
	Left      *treeNode `json:"l,omitempty"`
	Right     *treeNode `json:"r,omitempty"`
	Dist      []float64 `json:"d,omitempty"`
}

func (n *treeNode) isLeaf() bool {
	return n.Left == nil
}

// predict walks the tree and returns the normalized class distribution
// of the reached leaf.
func (n *treeNode) predict(row []float64) []float64 {
	for !n.isLeaf() {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	total := 0.0
	for _, w := range n.Dist {
		total += w
	}
	out := make([]float64, len(n.Dist))
	if total == 0 {
		return out
	}
	for i, w := range n.Dist {
		out[i] = w / total
	}
	return out
}

// growTree builds a tree over the given sample indices. rows are the
// scaled feature vectors, labels the per-row class indices, weights
// the per-class sample weights. featuresPerSplit features are drawn at
// random for each split.
func growTree(rows [][]float64, labels []int, weights []float64, idx []int,
	numClasses, depth, maxDepth, featuresPerSplit int, rng *rand.Rand) *treeNode {

	dist := classDist(labels, weights, idx, numClasses)

	if depth >= maxDepth || len(idx) < 2 || isPure(dist) {
		return &treeNode{Dist: dist}
	}

	feature, threshold, ok := bestSplit(rows, labels, weights, idx, numClasses, featuresPerSplit, rng)
	if !ok {
		return &treeNode{Dist: dist}
	}

	var left, right []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{Dist: dist}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(rows, labels, weights, left, numClasses, depth+1, maxDepth, featuresPerSplit, rng),
		Right:     growTree(rows, labels, weights, right, numClasses, depth+1, maxDepth, featuresPerSplit, rng),
	}
}

func classDist(labels []int, weights []float64, idx []int, numClasses int) []float64 {
	dist := make([]float64, numClasses)
	for _, i := range idx {
		dist[labels[i]] += weights[labels[i]]
	}
	return dist
}

func isPure(dist []float64) bool {
	seen := 0
	for _, w := range dist {
		if w > 0 {
			seen++
		}
	}
	return seen <= 1
}

// gini computes the Gini impurity of a weighted class distribution.
func gini(dist []float64) float64 {
	total := 0.0
	for _, w := range dist {
		total += w
	}
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, w := range dist {
		p := w / total
		impurity -= p * p
	}
	return impurity
}

// bestSplit scans a random subset of features for the threshold with
// the lowest weighted Gini impurity. Thresholds are midpoints between
// consecutive distinct values.
func bestSplit(rows [][]float64, labels []int, weights []float64, idx []int,
	numClasses, featuresPerSplit int, rng *rand.Rand) (int, float64, bool) {

	numFeatures := len(rows[idx[0]])
	candidates := rng.Perm(numFeatures)
	if featuresPerSplit < numFeatures {
		candidates = candidates[:featuresPerSplit]
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestScore := gini(classDist(labels, weights, idx, numClasses))
	found := false

	sorted := make([]int, len(idx))
	for _, feature := range candidates {
		copy(sorted, idx)
		f := feature
		sort.Slice(sorted, func(a, b int) bool {
			return rows[sorted[a]][f] < rows[sorted[b]][f]
		})

		leftDist := make([]float64, numClasses)
		rightDist := classDist(labels, weights, sorted, numClasses)
		leftTotal, rightTotal := 0.0, 0.0
		for _, w := range rightDist {
			rightTotal += w
		}

		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			w := weights[labels[i]]
			leftDist[labels[i]] += w
			rightDist[labels[i]] -= w
			leftTotal += w
			rightTotal -= w

			v, next := rows[i][f], rows[sorted[k+1]][f]
			if v == next {
				continue
			}

			total := leftTotal + rightTotal
			score := (leftTotal*gini(leftDist) + rightTotal*gini(rightDist)) / total
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (v + next) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}
