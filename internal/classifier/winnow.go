package classifier

// Winnow is a multiplicative-update online classifier (terminator_classifier_winnow.{h,cc}).
type Winnow struct {
	Threshold     float64
	Shift         float64
	Thickness     float64
	Alpha         float64
	Beta          float64
	MaxIterations int
}

// NewWinnow returns a Winnow classifier with terminator's default tuning.
func NewWinnow() *Winnow {
	return &Winnow{
		Threshold:     1.0,
		Shift:         1,
		Thickness:     0.1,
		Alpha:         1.23,
		Beta:          0.83,
		MaxIterations: 20,
	}
}

func (w *Winnow) Predict(weights map[string]*Node) float64 {
	if len(weights) == 0 {
		return logist(-w.Threshold / w.Shift)
	}
	var score float64
	for _, n := range weights {
		score += n.Winnow
	}
	score /= float64(len(weights))
	score -= w.Threshold
	return logist(score / w.Shift)
}

func (w *Winnow) Train(weights map[string]*Node, isSpam bool) {
	score := w.Predict(weights)
	if isSpam && score < Threshold+w.Thickness {
		for _, n := range weights {
			n.Winnow *= w.Alpha
		}
	} else if !isSpam && score > Threshold-w.Thickness {
		for _, n := range weights {
			n.Winnow *= w.Beta
		}
	}
}
