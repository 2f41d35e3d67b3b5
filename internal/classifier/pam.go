package classifier

// PAM is PA with a fixed-margin iterative update instead of a single
// hinge-loss step (terminator_classifier_pam.{h,cc}).
type PAM struct {
	Shift         float64
	Lambda        float64
	MaxIterations int
}

func NewPAM() *PAM {
	return &PAM{Shift: 1.25, Lambda: 0.1, MaxIterations: 200}
}

func (c *PAM) Predict(weights map[string]*Node) float64 {
	var score float64
	for _, n := range weights {
		score += n.PAM
	}
	return logist(score / c.Shift)
}

func (c *PAM) Train(weights map[string]*Node, isSpam bool) {
	if len(weights) == 0 {
		return
	}
	label := -1.0
	if isSpam {
		label = 1.0
	}
	var score float64
	for _, n := range weights {
		score += n.PAM
	}
	for count := 0; label*score < 1.0 && count < c.MaxIterations; count++ {
		tol := c.Lambda / float64(len(weights))
		for _, n := range weights {
			n.PAM += label * tol
		}
		score = 0
		for _, n := range weights {
			score += n.PAM
		}
	}
}
