package classifier

import "github.com/wolfpld/usenetarchive-sub002/internal/debug"

// Bank ties the persistent per-word Node store to the OWV combiner,
// giving the `uat classify` subcommands a single Score/Train entry point
// per message.
type Bank struct {
	store  *Store
	totals *Totals
	owv    *OWV
}

// DefaultWeights seeds every classifier with equal initial influence.
var DefaultWeights = []float64{1, 1, 1, 1, 1, 1, 1, 1}

// OpenBank loads persisted state from store (creating defaults on first
// use) and returns a ready-to-use Bank.
func OpenBank(store *Store) (*Bank, error) {
	totals, err := store.LoadTotals()
	if err != nil {
		return nil, err
	}
	weights, err := store.LoadWeights()
	if err != nil {
		return nil, err
	}
	if weights == nil {
		weights = DefaultWeights
	}
	return &Bank{store: store, totals: totals, owv: NewOWV(totals, weights)}, nil
}

// Score returns the combined spam probability for the given term set
// (deduplicated tokens of one message). Scores >= Threshold are spam.
func (b *Bank) Score(terms []string) (float64, error) {
	weights, err := b.loadNodes(terms)
	if err != nil {
		return 0, err
	}
	return b.owv.Predict(weights), nil
}

// Train updates every classifier's learned state (and the combiner's
// voting weights) from one labeled message, then persists the touched
// nodes, totals and weights.
func (b *Bank) Train(terms []string, isSpam bool) error {
	weights, err := b.loadNodes(terms)
	if err != nil {
		return err
	}
	b.owv.Train(weights, isSpam)
	debug.Log("CLASSIFY", "active votes this round: %d/8", b.owv.ActiveVotes(weights).Count())

	if isSpam {
		b.totals.Spam++
	} else {
		b.totals.Ham++
	}

	if err := b.store.SaveNodes(weights); err != nil {
		return err
	}
	if err := b.store.SaveTotals(b.totals); err != nil {
		return err
	}
	return b.store.SaveWeights(b.owv.Weights())
}

func (b *Bank) loadNodes(terms []string) (map[string]*Node, error) {
	out := make(map[string]*Node, len(terms))
	for _, t := range terms {
		if _, ok := out[t]; ok {
			continue
		}
		n, err := b.store.LoadNode(t)
		if err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, nil
}
