package skill

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

func noviceSample(i int) telemetry.PerformanceSample {
	return telemetry.PerformanceSample{
		CompletionTime:  90 + float64(i),
		Jumps:           40,
		Deaths:          5,
		CoinsCollected:  1,
		EnemiesDefeated: 0,
		TotalDistance:   5200,
		PreciseLandings: 0,
		MaxSpeed:        6,
		AirTimeRatio:    0.5,
		CompletionSpeed: 55,
		Skill:           telemetry.Novice,
	}
}

func intermediateSample(i int) telemetry.PerformanceSample {
	return telemetry.PerformanceSample{
		CompletionTime:  50 + float64(i),
		Jumps:           25,
		Deaths:          1,
		CoinsCollected:  7,
		EnemiesDefeated: 2,
		TotalDistance:   5400,
		PreciseLandings: 3,
		MaxSpeed:        9,
		AirTimeRatio:    0.35,
		CompletionSpeed: 100,
		Skill:           telemetry.Intermediate,
	}
}

func expertSample(i int) telemetry.PerformanceSample {
	return telemetry.PerformanceSample{
		CompletionTime:  20 + float64(i),
		Jumps:           15,
		Deaths:          0,
		CoinsCollected:  14,
		EnemiesDefeated: 5,
		TotalDistance:   5100,
		PreciseLandings: 8,
		MaxSpeed:        12,
		AirTimeRatio:    0.25,
		CompletionSpeed: 240,
		Skill:           telemetry.Expert,
	}
}

func trainingSet(perClass int) []telemetry.PerformanceSample {
	var out []telemetry.PerformanceSample
	for i := 0; i < perClass; i++ {
		out = append(out, noviceSample(i), intermediateSample(i), expertSample(i))
	}
	return out
}

func TestTrainRejectsTooFewSamples(t *testing.T) {
	c := NewClassifier(42)
	if err := c.Train(trainingSet(3)); err == nil {
		t.Fatal("Train should fail with 9 samples")
	}
	if c.Trained() {
		t.Error("failed training must not mark the classifier trained")
	}
}

func TestUntrainedPredictUsesHeuristic(t *testing.T) {
	c := NewClassifier(42)
	s := expertSample(0)
	label, proba := c.Predict(s)
	if label != Heuristic(s) {
		t.Errorf("untrained prediction %q, want heuristic %q", label, Heuristic(s))
	}
	if proba[label] != 1 {
		t.Errorf("heuristic probability for %q = %v, want 1", label, proba[label])
	}
}

func TestTrainedPredictSeparatesTiers(t *testing.T) {
	c := NewClassifier(42)
	if err := c.Train(trainingSet(10)); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if !c.Trained() {
		t.Fatal("classifier should be trained")
	}

	cases := []struct {
		sample telemetry.PerformanceSample
		want   telemetry.Label
	}{
		{noviceSample(3), telemetry.Novice},
		{intermediateSample(3), telemetry.Intermediate},
		{expertSample(3), telemetry.Expert},
	}
	for _, tc := range cases {
		got, proba := c.Predict(tc.sample)
		if got != tc.want {
			t.Errorf("predicted %q for a %s-shaped sample (proba %v)", got, tc.want, proba)
		}
		for _, class := range telemetry.Labels {
			if class != got && proba[class] > proba[got] {
				t.Errorf("winning class %q probability %v not dominant: %v", got, proba[got], proba)
			}
		}
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	c := NewClassifier(42)
	if err := c.Train(trainingSet(5)); err != nil {
		t.Fatalf("Train: %v", err)
	}
	_, proba := c.Predict(intermediateSample(0))
	sum := 0.0
	for _, p := range proba {
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
}

func TestTrainingIsDeterministicForSeed(t *testing.T) {
	a := NewClassifier(7)
	b := NewClassifier(7)
	data := trainingSet(8)
	if err := a.Train(data); err != nil {
		t.Fatalf("Train a: %v", err)
	}
	if err := b.Train(data); err != nil {
		t.Fatalf("Train b: %v", err)
	}
	input := intermediateSample(2)
	labelA, probaA := a.Predict(input)
	labelB, probaB := b.Predict(input)
	if labelA != labelB {
		t.Errorf("same seed, same data: labels differ (%q vs %q)", labelA, labelB)
	}
	for _, class := range telemetry.Labels {
		if probaA[class] != probaB[class] {
			t.Errorf("probability for %q differs: %v vs %v", class, probaA[class], probaB[class])
		}
	}
}

func TestShouldRetrain(t *testing.T) {
	c := NewClassifier(42)
	cases := []struct {
		n    int
		want bool
	}{
		{0, false},
		{5, false},
		{9, false},
		{10, true},
		{11, false},
		{15, true},
		{23, false},
		{100, true},
	}
	for _, tc := range cases {
		if got := c.ShouldRetrain(tc.n); got != tc.want {
			t.Errorf("ShouldRetrain(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestCustomParams(t *testing.T) {
	c := NewClassifierWith(42, Params{MinTrainingSamples: 4, RetrainInterval: 2})

	if c.ShouldRetrain(3) {
		t.Error("ShouldRetrain(3) = true below the configured minimum")
	}
	if !c.ShouldRetrain(4) {
		t.Error("ShouldRetrain(4) = false at the configured minimum")
	}
	if c.ShouldRetrain(5) {
		t.Error("ShouldRetrain(5) = true off the configured cadence")
	}
	if !c.ShouldRetrain(6) {
		t.Error("ShouldRetrain(6) = false on the configured cadence")
	}

	// A lowered minimum lets a small history train.
	if err := c.Train(trainingSet(2)); err != nil {
		t.Fatalf("Train with lowered minimum: %v", err)
	}
	if !c.Trained() {
		t.Error("classifier should be trained")
	}
}

func TestParamsZeroValuesFallBackToDefaults(t *testing.T) {
	c := NewClassifierWith(42, Params{})
	if got := c.ShouldRetrain(MinTrainingSamples - 1); got {
		t.Errorf("ShouldRetrain(%d) = true below the default minimum", MinTrainingSamples-1)
	}
	if got := c.ShouldRetrain(MinTrainingSamples); !got {
		t.Errorf("ShouldRetrain(%d) = false at the default minimum", MinTrainingSamples)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	a := NewClassifier(42)
	if err := a.Train(trainingSet(7)); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := a.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b := NewClassifier(42)
	if err := b.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !b.Trained() {
		t.Fatal("loaded classifier should be trained")
	}

	input := expertSample(1)
	labelA, probaA := a.Predict(input)
	labelB, probaB := b.Predict(input)
	if labelA != labelB {
		t.Errorf("loaded model label %q, want %q", labelB, labelA)
	}
	for _, class := range telemetry.Labels {
		if probaA[class] != probaB[class] {
			t.Errorf("loaded model probability for %q = %v, want %v", class, probaB[class], probaA[class])
		}
	}
}

func TestLoadRefusesPartialModel(t *testing.T) {
	dir := t.TempDir()

	a := NewClassifier(42)
	if err := a.Train(trainingSet(7)); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := a.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Remove one of the two files: loading must fail entirely.
	if err := os.Remove(filepath.Join(dir, scalerFile)); err != nil {
		t.Fatalf("remove scaler: %v", err)
	}

	b := NewClassifier(42)
	if err := b.Load(dir); err == nil {
		t.Fatal("Load should fail with scaler.json missing")
	}
	if b.Trained() {
		t.Error("partial load must leave the classifier untrained")
	}
}

func TestSaveUntrainedFails(t *testing.T) {
	c := NewClassifier(42)
	if err := c.Save(t.TempDir()); err == nil {
		t.Fatal("Save should fail on an untrained classifier")
	}
}

func TestTrainerRetrainsInBackground(t *testing.T) {
	c := NewClassifier(42)
	trainer := NewTrainer(c, "")
	defer trainer.Close()

	trainer.Request(trainingSet(7))

	deadline := time.Now().Add(10 * time.Second)
	for !c.Trained() {
		if time.Now().After(deadline) {
			t.Fatal("trainer did not publish a model in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if got, _ := c.Predict(expertSample(0)); got != telemetry.Expert {
		t.Errorf("prediction after background retrain = %q, want %q", got, telemetry.Expert)
	}
}

func TestStratifiedSplitKeepsAllClassesInTraining(t *testing.T) {
	samples := trainingSet(10)
	rows := make([][]float64, len(samples))
	labels := make([]telemetry.Label, len(samples))
	for i, s := range samples {
		f := s.Features()
		rows[i] = f[:]
		labels[i] = s.Skill
	}
	rng := rand.New(rand.NewSource(1))
	trainX, trainY, testX, testY := stratifiedSplit(rows, labels, 0.2, rng)

	if len(trainX)+len(testX) != len(rows) {
		t.Fatalf("split lost rows: %d + %d != %d", len(trainX), len(testX), len(rows))
	}
	seen := make(map[telemetry.Label]int)
	for _, label := range trainY {
		seen[label]++
	}
	for _, class := range telemetry.Labels {
		if seen[class] == 0 {
			t.Errorf("class %q missing from training split", class)
		}
	}
	// 10 per class at 20% holds out 2 per class.
	if len(testY) != 6 {
		t.Errorf("holdout size = %d, want 6", len(testY))
	}
}
