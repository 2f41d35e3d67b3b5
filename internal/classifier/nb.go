package classifier

import "math"

// NB is a Naive-Bayes-style classifier over per-word spam/ham counts
// (terminator_classifier_nb.{h,cc}).
type NB struct {
	Shift         float64
	Smooth        float64
	Thickness     float64
	Increasing    int
	MaxIterations int
	Totals        *Totals
}

func NewNB(totals *Totals) *NB {
	return &NB{
		Shift:         3200,
		Smooth:        1e-5,
		Thickness:     0.25,
		Increasing:    15,
		MaxIterations: 20,
		Totals:        totals,
	}
}

func (c *NB) Predict(weights map[string]*Node) float64 {
	score := 0.0
	for _, n := range weights {
		if n.NBSpam == 0 && n.NBHam == 0 {
			continue
		}
		score += math.Log(
			(float64(n.NBSpam) + c.Smooth) / (float64(n.NBHam) + c.Smooth) *
				(float64(c.Totals.Ham) + 2*c.Smooth) / (float64(c.Totals.Spam) + 2*c.Smooth))
	}
	score += math.Log((float64(c.Totals.Spam) + c.Smooth) / (float64(c.Totals.Ham) + c.Smooth))
	return logist(score / c.Shift)
}

func (c *NB) trainCell(weights map[string]*Node, isSpam bool) {
	for _, n := range weights {
		if isSpam {
			n.NBSpam += c.Increasing
		} else {
			n.NBHam += c.Increasing
		}
	}
}

func (c *NB) Train(weights map[string]*Node, isSpam bool) {
	score := c.Predict(weights)
	for count := 0; isSpam && score < Threshold+c.Thickness && count < c.MaxIterations; count++ {
		c.trainCell(weights, isSpam)
		score = c.Predict(weights)
	}
	for count := 0; !isSpam && score > Threshold-c.Thickness && count < c.MaxIterations; count++ {
		c.trainCell(weights, isSpam)
		score = c.Predict(weights)
	}
}
