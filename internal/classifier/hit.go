package classifier

import "math"

// HIT tracks a per-word hit ratio (how lopsided a word's spam/ham counts
// are) and uses it to scale the learning step of an accumulated score
// (terminator_classifier_hit.{h,cc}).
type HIT struct {
	Rate          float64
	Shift         float64
	Thickness     float64
	Smooth        float64
	MaxIterations int
}

func NewHIT() *HIT {
	return &HIT{Rate: 0.01, Shift: 60, Thickness: 0.27, Smooth: 1e-5, MaxIterations: 250}
}

func (c *HIT) Predict(weights map[string]*Node) float64 {
	var score float64
	for _, n := range weights {
		score += n.Hit
	}
	return logist(score / c.Shift)
}

func (c *HIT) Train(weights map[string]*Node, isSpam bool) {
	for _, n := range weights {
		if isSpam {
			n.HitSpam++
		} else {
			n.HitHam++
		}
	}
	score := c.Predict(weights)
	for count := 0; isSpam && score < Threshold+c.Thickness && count < c.MaxIterations; count++ {
		for _, n := range weights {
			p := (float64(n.HitSpam) + c.Smooth) / (float64(n.HitSpam+n.HitHam) + 2*c.Smooth)
			ratio := math.Abs(2*p - 1.0)
			n.Hit += (1.0 - score) * c.Rate
			n.Hit *= ratio
		}
		score = c.Predict(weights)
	}
	for count := 0; !isSpam && score > Threshold-c.Thickness && count < c.MaxIterations; count++ {
		for _, n := range weights {
			p := (float64(n.HitSpam) + c.Smooth) / (float64(n.HitSpam+n.HitHam) + 2*c.Smooth)
			ratio := math.Abs(2*p - 1.0)
			n.Hit -= score * c.Rate
			n.Hit *= ratio
		}
		score = c.Predict(weights)
	}
}
