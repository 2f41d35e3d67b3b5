package classifier

import "github.com/wolfpld/usenetarchive-sub002/internal/bitset"

// OWV combines the eight base classifiers into one weighted vote
// (terminator_classifier_owv.{h,cc}).
//
// The reference implementation seeds its per-classifier weight array with
// `while (i++ < CLASSIFIER_NUMBER) weights_classifier_[i] = weights_classifier[i];`
// — a post-increment in the loop condition that evaluates the comparison
// against the *old* index and only then advances it, so the body reads and
// writes slots 1..8 instead of 0..7: weights_classifier_[0] is left at its
// zero value and the last iteration reads and writes one slot past the end
// of both eight-element arrays. The Open Question decision recorded in
// DESIGN.md is to fix this rather than reproduce it: NewOWV copies weights
// 1:1 by index.
type OWV struct {
	Step         float64
	SpamTradeoff float64

	classifiers []Classifier
	weights     [8]float64
}

// ActiveVotes returns the set of classifier indices whose individual
// Predict crossed the spam threshold for this term set — a small,
// fixed-size (8-element) feature set, the per-document use case
// internal/bitset's in-place representation is sized for.
func (o *OWV) ActiveVotes(weights map[string]*Node) *bitset.BitSet {
	active := bitset.New(len(o.classifiers))
	for i, c := range o.classifiers {
		if c.Predict(weights) > Threshold {
			active.Set(i)
		}
	}
	return active
}

// NewOWV builds the eight-member classifier bank with the given initial
// per-classifier combination weights (len must be 8; shorter slices are
// zero-padded, matching each classifier starting with no influence).
func NewOWV(totals *Totals, initialWeights []float64) *OWV {
	o := &OWV{
		Step:         0.02,
		SpamTradeoff: 1.0,
		classifiers: []Classifier{
			NewBWinnow(),
			NewLR(),
			NewNB(totals),
			NewNSNB(totals),
			NewWinnow(),
			NewPA(),
			NewPAM(),
			NewHIT(),
		},
	}
	for i := range o.weights {
		if i < len(initialWeights) {
			o.weights[i] = initialWeights[i]
		}
	}
	return o
}

func (o *OWV) Predict(weights map[string]*Node) float64 {
	var final, total float64
	for i, c := range o.classifiers {
		final += c.Predict(weights) * o.weights[i]
		total += o.weights[i]
	}
	if total == 0 {
		return 0
	}
	return final / total
}

func (o *OWV) Train(weights map[string]*Node, isSpam bool) {
	scores := make([]float64, len(o.classifiers))
	var final, total float64
	for i, c := range o.classifiers {
		scores[i] = c.Predict(weights)
		final += scores[i] * o.weights[i]
		total += o.weights[i]
	}
	if total != 0 {
		final /= total
	}

	adjust := func(raiseIf func(s float64) bool, delta float64) {
		for i, s := range scores {
			if raiseIf(s) {
				o.weights[i] += delta
			}
		}
	}
	below := func(s float64) bool { return s <= Threshold }
	above := func(s float64) bool { return s > Threshold }

	switch {
	case isSpam && final > Threshold:
		adjust(below, -o.Step)
	case isSpam:
		adjust(above, o.SpamTradeoff*o.Step)
	case !isSpam && final > Threshold:
		adjust(below, o.SpamTradeoff*o.Step)
	default:
		adjust(above, -o.Step)
	}

	for _, c := range o.classifiers {
		c.Train(weights, isSpam)
	}
}

// Weights returns a copy of the current per-classifier combination
// weights, for persistence.
func (o *OWV) Weights() []float64 {
	out := make([]float64, len(o.weights))
	copy(out, o.weights[:])
	return out
}
