package classifier

// LR is an online logistic-regression classifier accumulating one scalar
// weight per word (terminator_classifier_lr.{h,cc}).
type LR struct {
	LearningRate  float64
	Shift         float64
	Thickness     float64
	MaxIterations int
}

func NewLR() *LR {
	return &LR{
		LearningRate:  0.01,
		Shift:         10,
		Thickness:     0.20,
		MaxIterations: 200,
	}
}

func (c *LR) Predict(weights map[string]*Node) float64 {
	var score float64
	for _, n := range weights {
		score += n.Logist
	}
	return logist(score / c.Shift)
}

func (c *LR) Train(weights map[string]*Node, isSpam bool) {
	score := c.Predict(weights)
	for count := 0; isSpam && score <= Threshold+c.Thickness && count < c.MaxIterations; count++ {
		for _, n := range weights {
			n.Logist += (1.0 - score) * c.LearningRate
		}
		score = c.Predict(weights)
	}
	for count := 0; !isSpam && score >= Threshold-c.Thickness && count < c.MaxIterations; count++ {
		for _, n := range weights {
			n.Logist -= score * c.LearningRate
		}
		score = c.Predict(weights)
	}
}
