package classifier

// BWinnow is the "balanced Winnow" variant carrying separate upper/lower
// weights so its score can go negative (terminator_classifier_bwinnow.{h,cc}).
type BWinnow struct {
	Alpha         float64
	Beta          float64
	Shift         float64
	Threshold     float64
	Thickness     float64
	MaxIterations int
}

func NewBWinnow() *BWinnow {
	return &BWinnow{
		Alpha:         1.11,
		Beta:          0.89,
		Shift:         1,
		Threshold:     1.0,
		Thickness:     0.1,
		MaxIterations: 200,
	}
}

func (b *BWinnow) Predict(weights map[string]*Node) float64 {
	if len(weights) == 0 {
		return logist(-b.Threshold / b.Shift)
	}
	var score float64
	for _, n := range weights {
		score += n.BwinnowUpper - n.BwinnowLower
	}
	score /= float64(len(weights))
	score -= b.Threshold
	return logist(score / b.Shift)
}

func (b *BWinnow) Train(weights map[string]*Node, isSpam bool) {
	score := b.Predict(weights)
	for count := 0; isSpam && score <= Threshold+b.Thickness && count < b.MaxIterations; count++ {
		for _, n := range weights {
			n.BwinnowUpper *= b.Alpha
			n.BwinnowLower *= b.Beta
		}
		score = b.Predict(weights)
	}
	score = b.Predict(weights)
	for count := 0; !isSpam && score >= Threshold-b.Thickness && count < b.MaxIterations; count++ {
		for _, n := range weights {
			n.BwinnowUpper *= b.Beta
			n.BwinnowLower *= b.Alpha
		}
		score = b.Predict(weights)
	}
}
