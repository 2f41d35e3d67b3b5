package classifier

// PA is a single-shot Passive-Aggressive linear classifier using hinge
// loss (terminator_classifier_pa.{h,cc}).
type PA struct {
	Shift float64
}

func NewPA() *PA {
	return &PA{Shift: 1.0}
}

func (c *PA) Predict(weights map[string]*Node) float64 {
	var score float64
	for _, n := range weights {
		score += n.PA
	}
	return logist(score / c.Shift)
}

func (c *PA) Train(weights map[string]*Node, isSpam bool) {
	if len(weights) == 0 {
		return
	}
	label := -1.0
	if isSpam {
		label = 1.0
	}
	var score float64
	for _, n := range weights {
		score += n.PA
	}
	loss := 1.0 - label*score
	if loss < 0 {
		loss = 0
	}
	tol := loss / float64(len(weights))
	for _, n := range weights {
		n.PA += label * tol
	}
}
