// Package skill predicts a player's skill tier from performance
// samples. A random forest trained on the session history does the
// prediction once enough data exists; before that a point-score
// heuristic stands in.
package skill

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

// Scaler standardizes features to zero mean and unit variance. Fitted
// once per training run and applied to every prediction input.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler computes per-feature mean and standard deviation over the
// training matrix. A constant feature gets std 1 so transforming it
// yields zero instead of dividing by zero.
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("skill: cannot fit scaler on empty data")
	}
	n := len(rows[0])
	mean := make([]float64, n)
	std := make([]float64, n)

	for _, row := range rows {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(rows))
	}
	for _, row := range rows {
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(len(rows)))
		if std[j] == 0 {
			std[j] = 1
		}
	}
	return &Scaler{Mean: mean, Std: std}, nil
}

// Transform standardizes a single feature vector in place-free form.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformAll standardizes a whole matrix.
func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}

func (s *Scaler) valid() bool {
	return s != nil && len(s.Mean) == telemetry.FeatureCount && len(s.Std) == len(s.Mean)
}
