// Package classifier is a Go port of the "terminator" spam classifier
// bank (SPEC_FULL.md §4, grounded on original_source/contrib/terminator):
// eight independently-trained online classifiers voting through a
// weighted combiner (OWV). The spec treats this as an external
// collaborator; this port is driven by the `uat classify train` and
// `uat classify score` subcommands. `uat build` does not consult it, so
// no post is filtered out of the lexicon by it.
package classifier

import "math"

// Threshold is the spam/ham decision boundary shared by every classifier
// (terminator_classifier_base.h's CLASSIFIER_THRESHOLD).
const Threshold = 0.5

// Node carries one term's per-classifier learned state, mirroring
// terminator_common.h's Node struct — one map entry per word seen in the
// message under classification.
type Node struct {
	Logist float64 // LR

	BwinnowUpper float64
	BwinnowLower float64

	NBSpam int
	NBHam  int

	NSNBSpam       int
	NSNBHam        int
	NSNBConfidence float64

	PAM float64
	PA  float64

	Winnow float64

	HitSpam int
	HitHam  int
	Hit     float64
}

// NewNode returns a Node with the initial weights the online classifiers
// expect before any training has occurred (Winnow-family classifiers
// start at a neutral multiplicative weight of 1; additive classifiers
// start at 0).
func NewNode() *Node {
	return &Node{
		BwinnowUpper:   1,
		BwinnowLower:   1,
		Winnow:         1,
		NSNBConfidence: 1,
	}
}

// logist is the standard logistic sigmoid used throughout terminator to
// squash unbounded scores into (0, 1).
func logist(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Classifier is one of the eight voting members of OWV.
type Classifier interface {
	Predict(weights map[string]*Node) float64
	Train(weights map[string]*Node, isSpam bool)
}

// Totals tracks the corpus-wide spam/ham counts the NB-family classifiers
// need for their prior term (terminator_classifier_base.h's TotalSpam /
// TotalHam class statics, here instance fields since Go has no
// process-global classifier state).
type Totals struct {
	Spam uint64
	Ham  uint64
}
