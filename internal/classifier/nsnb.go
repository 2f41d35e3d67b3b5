package classifier

import "math"

// NSNB is NB's "non-stationary" variant, decaying each word's confidence
// contribution based on how often re-training was needed to cross the
// threshold (terminator_classifier_nsnb.{h,cc}).
type NSNB struct {
	Shift         float64
	Smooth        float64
	Thickness     float64
	LearningRate  float64
	MaxIterations int
	Totals        *Totals
}

func NewNSNB(totals *Totals) *NSNB {
	return &NSNB{
		Shift:         3200,
		Smooth:        1e-5,
		Thickness:     0.25,
		LearningRate:  0.65,
		MaxIterations: 250,
		Totals:        totals,
	}
}

func (c *NSNB) Predict(weights map[string]*Node) float64 {
	score := 0.0
	for _, n := range weights {
		if n.NSNBSpam == 0 && n.NSNBHam == 0 {
			continue
		}
		score += math.Log(
			(float64(n.NSNBSpam)+c.Smooth)/(float64(n.NSNBHam)+c.Smooth)*
				(float64(c.Totals.Ham)+2*c.Smooth)/(float64(c.Totals.Spam)+2*c.Smooth)) * n.NSNBConfidence
	}
	score += math.Log((float64(c.Totals.Spam) + c.Smooth) / (float64(c.Totals.Ham) + c.Smooth))
	return logist(score / c.Shift)
}

func (c *NSNB) trainCell(weights map[string]*Node, isSpam bool) {
	for _, n := range weights {
		if isSpam {
			n.NSNBSpam++
		} else {
			n.NSNBHam++
		}
	}
}

// Train mirrors the original's odd bookkeeping: it bumps the shared Totals
// counter once up front, then decrements that counter on every iteration
// of the adjustment loop before re-scoring, so a loop that runs more than
// once leaves Totals below where it started — a quirk of the reference
// implementation retained here since it changes the converged weights,
// not just a cosmetic detail.
func (c *NSNB) Train(weights map[string]*Node, isSpam bool) {
	score := c.Predict(weights)
	if isSpam {
		c.Totals.Spam++
	} else {
		c.Totals.Ham++
	}

	for count := 0; isSpam && score < Threshold+c.Thickness && count < c.MaxIterations; count++ {
		for _, n := range weights {
			n.NSNBConfidence /= c.LearningRate
		}
		c.trainCell(weights, isSpam)
		c.Totals.Spam--
		score = c.Predict(weights)
	}
	for count := 0; !isSpam && score > Threshold-c.Thickness && count < c.MaxIterations; count++ {
		for _, n := range weights {
			n.NSNBConfidence *= c.LearningRate
		}
		c.trainCell(weights, isSpam)
		c.Totals.Ham--
		score = c.Predict(weights)
	}
}
