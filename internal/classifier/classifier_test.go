package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshWeights(terms ...string) map[string]*Node {
	out := make(map[string]*Node, len(terms))
	for _, t := range terms {
		out[t] = NewNode()
	}
	return out
}

func TestNewNodeInitialWeights(t *testing.T) {
	n := NewNode()
	assert.Equal(t, 1.0, n.BwinnowUpper)
	assert.Equal(t, 1.0, n.BwinnowLower)
	assert.Equal(t, 1.0, n.Winnow)
	assert.Equal(t, 1.0, n.NSNBConfidence)
	assert.Zero(t, n.Logist)
	assert.Zero(t, n.PA)
	assert.Zero(t, n.PAM)
}

// Each base classifier except BWinnow starts at a neutral score on a fresh
// node set, and every one must move strictly toward the trained label —
// this is the behavioral contract OWV relies on to combine votes
// meaningfully.
func TestWinnowTrainMovesTowardLabel(t *testing.T) {
	c := NewWinnow()
	spam := freshWeights("free", "money")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	ham := freshWeights("free", "money")
	before = c.Predict(ham)
	c.Train(ham, false)
	assert.Less(t, c.Predict(ham), before)
}

func TestBWinnowTrainMovesTowardLabel(t *testing.T) {
	c := NewBWinnow()
	spam := freshWeights("viagra")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	// A fresh node scores logist(-Threshold) ≈ 0.27 under BWinnow, already
	// below the ham margin, so ham training would leave it unchanged; the
	// ham half starts from the spam-trained nodes instead.
	ham := spam
	before = c.Predict(ham)
	c.Train(ham, false)
	assert.Less(t, c.Predict(ham), before)
}

func TestLRTrainMovesTowardLabel(t *testing.T) {
	c := NewLR()
	spam := freshWeights("lottery")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	ham := freshWeights("lottery")
	before = c.Predict(ham)
	c.Train(ham, false)
	assert.Less(t, c.Predict(ham), before)
}

func TestPATrainMovesTowardLabel(t *testing.T) {
	c := NewPA()
	spam := freshWeights("urgent")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	ham := freshWeights("urgent")
	before = c.Predict(ham)
	c.Train(ham, false)
	assert.Less(t, c.Predict(ham), before)
}

func TestPAMTrainMovesTowardLabel(t *testing.T) {
	c := NewPAM()
	spam := freshWeights("discount")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	ham := freshWeights("discount")
	before = c.Predict(ham)
	c.Train(ham, false)
	assert.Less(t, c.Predict(ham), before)
}

func TestHITTrainMovesTowardLabel(t *testing.T) {
	c := NewHIT()
	spam := freshWeights("click", "here")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	ham := freshWeights("click", "here")
	before = c.Predict(ham)
	c.Train(ham, false)
	assert.Less(t, c.Predict(ham), before)
}

func TestNBTrainMovesTowardLabel(t *testing.T) {
	totals := &Totals{}
	c := NewNB(totals)
	spam := freshWeights("enlarge")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	totals2 := &Totals{}
	c2 := NewNB(totals2)
	ham := freshWeights("enlarge")
	before = c2.Predict(ham)
	c2.Train(ham, false)
	assert.Less(t, c2.Predict(ham), before)
}

// NSNB mutates its shared Totals while training (see its Train doc
// comment); give it headroom so the documented decrement quirk cannot
// underflow the unsigned counters within this test's iteration budget.
func TestNSNBTrainMovesTowardLabel(t *testing.T) {
	totals := &Totals{Spam: 500, Ham: 500}
	c := NewNSNB(totals)
	spam := freshWeights("inheritance")
	before := c.Predict(spam)
	c.Train(spam, true)
	assert.Greater(t, c.Predict(spam), before)

	totals2 := &Totals{Spam: 500, Ham: 500}
	c2 := NewNSNB(totals2)
	ham := freshWeights("inheritance")
	before = c2.Predict(ham)
	c2.Train(ham, false)
	assert.Less(t, c2.Predict(ham), before)
}

// TestOWVPredictIsWeightedAverage checks OWV.Predict against a manual mean
// of the same eight classifiers (constructed in NewOWV's order) over a
// fresh node, since equal combination weights make the combiner's output
// exactly their arithmetic mean.
func TestOWVPredictIsWeightedAverage(t *testing.T) {
	totals := &Totals{}
	owv := NewOWV(totals, DefaultWeights)
	weights := freshWeights("term")

	members := []Classifier{
		NewBWinnow(), NewLR(), NewNB(totals), NewNSNB(totals),
		NewWinnow(), NewPA(), NewPAM(), NewHIT(),
	}
	var sum float64
	for _, c := range members {
		sum += c.Predict(weights)
	}
	want := sum / float64(len(members))

	assert.InDelta(t, want, owv.Predict(weights), 1e-9)
}

// TestOWVTrainChangesCombinationWeights sets up a node where seven of the
// eight member classifiers already predict spam strongly (Logist, Winnow,
// PA, PAM, Hit, NB and NSNB counters all biased positive) while BWinnow is
// left at its neutral default, which predicts below threshold (its score
// formula starts at -Threshold, unlike the other seven, which start
// exactly at 0.5 — see BWinnow.Predict). That mismatch guarantees OWV's
// combined score lands above threshold while BWinnow disagrees, so
// Train's "penalize the classifiers that got it wrong" branch fires on
// BWinnow's combination weight.
func TestOWVTrainChangesCombinationWeights(t *testing.T) {
	totals := &Totals{}
	owv := NewOWV(totals, DefaultWeights)

	node := NewNode()
	node.Logist = 5
	node.Winnow = 2
	node.PA = 2
	node.PAM = 2
	node.Hit = 30
	node.NBSpam, node.NBHam = 100, 1
	node.NSNBSpam, node.NSNBHam = 100, 1
	weights := map[string]*Node{"term": node}

	before := owv.Weights()
	owv.Train(weights, true)
	after := owv.Weights()
	assert.NotEqual(t, before, after, "training should adjust at least one classifier's combination weight")
	assert.Less(t, after[0], before[0], "BWinnow (index 0) disagreed with the spam verdict and should be penalized")
}

func TestOWVActiveVotesSizedToClassifierCount(t *testing.T) {
	totals := &Totals{}
	owv := NewOWV(totals, DefaultWeights)
	votes := owv.ActiveVotes(freshWeights("x"))
	assert.Equal(t, 8, votes.Len())
}

// TestBankTrainAndScoreRoundTrip exercises the Bank's public entry points
// end to end against a real bbolt-backed Store: training must not error,
// and Score must return a valid probability for both a trained and an
// unseen term set.
func TestBankTrainAndScoreRoundTrip(t *testing.T) {
	store, err := OpenStore(t.TempDir() + "/classify.db")
	require.NoError(t, err)
	defer store.Close()

	bank, err := OpenBank(store)
	require.NoError(t, err)

	require.NoError(t, bank.Train([]string{"viagra", "lottery", "winner"}, true))
	require.NoError(t, bank.Train([]string{"meeting", "agenda", "report"}, false))

	for _, terms := range [][]string{
		{"viagra", "lottery", "winner"},
		{"meeting", "agenda", "report"},
		{"never", "seen", "before"},
	} {
		score, err := bank.Score(terms)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

// TestBankTrainPersistsAcrossReopen checks that a trained Node survives a
// Store close/reopen cycle with its learned fields intact.
func TestBankTrainPersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/classify.db"

	store, err := OpenStore(path)
	require.NoError(t, err)
	bank, err := OpenBank(store)
	require.NoError(t, err)
	require.NoError(t, bank.Train([]string{"reliablyspammy"}, false))
	require.NoError(t, store.Close())

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	node, err := reopened.LoadNode("reliablyspammy")
	require.NoError(t, err)
	assert.NotEqual(t, NewNode(), node, "trained node should differ from a fresh one")

	// Totals is read back without error; its exact value depends on the
	// NSNB classifier's internal speculative bookkeeping (see NSNB.Train),
	// which this test does not pin down.
	_, err = reopened.LoadTotals()
	require.NoError(t, err)
}
