package skill

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

const (
	// MinTrainingSamples is the default floor below which training
	// refuses to run.
	MinTrainingSamples = 10
	// RetrainInterval is the default retrain cadence in samples.
	RetrainInterval = 5
	// holdoutMinSamples enables the train/test split evaluation.
	holdoutMinSamples = 20
	holdoutFraction   = 0.2
)

// Params tunes the training schedule. Zero values fall back to the
// package defaults so a partially filled config still works.
type Params struct {
	MinTrainingSamples int
	RetrainInterval    int
}

// DefaultParams returns the built-in training schedule.
func DefaultParams() Params {
	return Params{
		MinTrainingSamples: MinTrainingSamples,
		RetrainInterval:    RetrainInterval,
	}
}

func (p Params) normalized() Params {
	if p.MinTrainingSamples <= 0 {
		p.MinTrainingSamples = MinTrainingSamples
	}
	if p.RetrainInterval <= 0 {
		p.RetrainInterval = RetrainInterval
	}
	return p
}

// model pairs a fitted forest with the scaler it was trained under.
// The two are published and read together so a prediction never mixes
// a new forest with an old scaler.
type model struct {
	forest *Forest
	scaler *Scaler
}

// Classifier predicts skill labels. Until a model has been trained it
// falls back to the point-score heuristic. The trained model is held
// behind an atomic pointer so a background trainer can swap it in
// while the game loop keeps predicting.
type Classifier struct {
	seed    int64
	params  Params
	current atomic.Pointer[model]
}

// NewClassifier creates an untrained classifier with the default
// training schedule. The seed drives bootstrap sampling and the
// holdout split, so runs are reproducible.
func NewClassifier(seed int64) *Classifier {
	return NewClassifierWith(seed, DefaultParams())
}

// NewClassifierWith creates an untrained classifier with a custom
// training schedule.
func NewClassifierWith(seed int64, params Params) *Classifier {
	return &Classifier{seed: seed, params: params.normalized()}
}

// Trained reports whether a model is available.
func (c *Classifier) Trained() bool {
	return c.current.Load() != nil
}

// ShouldRetrain reports whether a history of n samples warrants a
// retrain: enough data overall, and on the retrain cadence.
func (c *Classifier) ShouldRetrain(n int) bool {
	return n >= c.params.MinTrainingSamples && n%c.params.RetrainInterval == 0
}

// Train fits a new forest on the sample history and atomically
// replaces the current model. Below the minimum sample count it
// returns an error and leaves any existing model in place.
func (c *Classifier) Train(samples []telemetry.PerformanceSample) error {
	if len(samples) < c.params.MinTrainingSamples {
		return fmt.Errorf("skill: cannot train: need %d samples, have %d", c.params.MinTrainingSamples, len(samples))
	}

	rows := make([][]float64, len(samples))
	labels := make([]telemetry.Label, len(samples))
	for i, s := range samples {
		f := s.Features()
		rows[i] = f[:]
		labels[i] = s.Skill
		if !labels[i].Valid() {
			labels[i] = telemetry.Novice
		}
	}

	scaler, err := FitScaler(rows)
	if err != nil {
		return fmt.Errorf("skill: cannot train: %w", err)
	}
	scaled := scaler.TransformAll(rows)

	rng := rand.New(rand.NewSource(c.seed))

	if len(scaled) >= holdoutMinSamples {
		trainX, trainY, testX, testY := stratifiedSplit(scaled, labels, holdoutFraction, rng)
		forest, err := TrainForest(trainX, trainY, rng)
		if err != nil {
			return err
		}
		log.Info("skill model trained",
			"samples", len(samples),
			"train_accuracy", forest.Score(trainX, trainY),
			"test_accuracy", forest.Score(testX, testY))
		c.current.Store(&model{forest: forest, scaler: scaler})
		return nil
	}

	forest, err := TrainForest(scaled, labels, rng)
	if err != nil {
		return err
	}
	log.Info("skill model trained",
		"samples", len(samples),
		"accuracy", forest.Score(scaled, labels))
	c.current.Store(&model{forest: forest, scaler: scaler})
	return nil
}

// Predict returns the skill label for a sample plus the per-class
// probabilities. Untrained, it falls back to the heuristic with a
// certain probability of 1 for the chosen label.
func (c *Classifier) Predict(s telemetry.PerformanceSample) (telemetry.Label, map[telemetry.Label]float64) {
	m := c.current.Load()
	if m == nil {
		label := Heuristic(s)
		return label, map[telemetry.Label]float64{label: 1}
	}
	f := s.Features()
	row := m.scaler.Transform(f[:])
	proba := m.forest.Proba(row)

	best := m.forest.Classes[0]
	for _, class := range m.forest.Classes[1:] {
		if proba[class] > proba[best] {
			best = class
		}
	}
	return best, proba
}

// stratifiedSplit holds out roughly frac of the rows per class for
// evaluation, shuffling within each class first.
func stratifiedSplit(rows [][]float64, labels []telemetry.Label, frac float64, rng *rand.Rand) (
	trainX [][]float64, trainY []telemetry.Label, testX [][]float64, testY []telemetry.Label) {

	byClass := make(map[telemetry.Label][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}
	for _, class := range telemetry.Labels {
		idx := byClass[class]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		holdout := int(float64(len(idx)) * frac)
		// A class with a single sample stays in the training set.
		if holdout == 0 && len(idx) >= 5 {
			holdout = 1
		}
		for k, i := range idx {
			if k < holdout {
				testX = append(testX, rows[i])
				testY = append(testY, labels[i])
			} else {
				trainX = append(trainX, rows[i])
				trainY = append(trainY, labels[i])
			}
		}
	}
	return trainX, trainY, testX, testY
}
