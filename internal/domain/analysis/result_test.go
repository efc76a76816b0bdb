package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

func TestNewResultIsPending(t *testing.T) {
	r := NewResult(common.NewID())

	assert.Equal(t, StatusPending, r.Status)
	assert.NoError(t, r.ID.Validate())
	assert.False(t, r.CreatedAt.IsZero())
	assert.Nil(t, r.CompletedAt)
}

func TestHappyPathTransitions(t *testing.T) {
	r := NewResult(common.NewID())

	for _, next := range []Status{
		StatusExtracting, StatusAnalyzing, StatusScoring,
		StatusEnriching, StatusScoring,
	} {
		require.NoError(t, r.Transition(next), "to %s", next)
	}

	r.MarkComplete()
	assert.Equal(t, StatusComplete, r.Status)
	require.NotNil(t, r.CompletedAt)
}

func TestScoringCanCompleteWithoutEnrichment(t *testing.T) {
	r := NewResult(common.NewID())
	require.NoError(t, r.Transition(StatusExtracting))
	require.NoError(t, r.Transition(StatusAnalyzing))
	require.NoError(t, r.Transition(StatusScoring))

	assert.True(t, r.Status.CanTransition(StatusComplete))
}

func TestIllegalTransitionsRejected(t *testing.T) {
	tests := []struct {
		from, to Status
	}{
		{StatusPending, StatusAnalyzing},
		{StatusPending, StatusComplete},
		{StatusExtracting, StatusScoring},
		{StatusAnalyzing, StatusEnriching},
		{StatusComplete, StatusScoring},
		{StatusFailed, StatusExtracting},
		{StatusComplete, StatusFailed},
	}
	for _, tt := range tests {
		r := NewResult(common.NewID())
		r.Status = tt.from
		err := r.Transition(tt.to)
		require.Error(t, err, "%s -> %s", tt.from, tt.to)
		assert.True(t, errors.IsCode(err, errors.CodeAnalysisInvalidTransition))
	}
}

func TestFailedReachableFromEveryNonTerminalState(t *testing.T) {
	for _, from := range []Status{
		StatusPending, StatusExtracting, StatusAnalyzing, StatusEnriching, StatusScoring,
	} {
		r := NewResult(common.NewID())
		r.Status = from
		r.MarkFailed("boom")

		assert.Equal(t, StatusFailed, r.Status, "from %s", from)
		assert.Equal(t, "boom", r.ErrorMessage)
		assert.NotNil(t, r.CompletedAt)
	}
}

func TestMarkFailedIsNoOpOnTerminalResult(t *testing.T) {
	r := NewResult(common.NewID())
	r.Status = StatusComplete

	r.MarkFailed("late failure")

	assert.Equal(t, StatusComplete, r.Status)
	assert.Empty(t, r.ErrorMessage)
}

func TestMarkCompleteIsNoOpOnFailedResult(t *testing.T) {
	r := NewResult(common.NewID())
	r.MarkFailed("boom")

	r.MarkComplete()

	assert.Equal(t, StatusFailed, r.Status)
}

func TestAskingPrice(t *testing.T) {
	tests := []struct {
		name  string
		data  common.Metadata
		want  float64
		valid bool
	}{
		{"float price", common.Metadata{"asking_price": 425000.0}, 425000, true},
		{"int price", common.Metadata{"asking_price": 425000}, 425000, true},
		{"zero price", common.Metadata{"asking_price": 0.0}, 0, false},
		{"negative price", common.Metadata{"asking_price": -1.0}, 0, false},
		{"string price", common.Metadata{"asking_price": "425000"}, 0, false},
		{"missing price", common.Metadata{}, 0, false},
		{"nil data", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult(common.NewID())
			r.PropertyData = tt.data
			got, ok := r.AskingPrice()
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasAddress(t *testing.T) {
	r := NewResult(common.NewID())
	assert.False(t, r.HasAddress())

	r.PropertyData = common.Metadata{"address": "Keizersgracht 123"}
	assert.False(t, r.HasAddress())

	r.PropertyData["postal_code"] = "1015 CJ"
	assert.True(t, r.HasAddress())
}

func TestProgressMessages(t *testing.T) {
	assert.Equal(t, "Analysis complete!", StatusComplete.ProgressMessage())
	assert.Equal(t, "Processing...", Status("bogus").ProgressMessage())
	assert.NotEmpty(t, StatusEnriching.ProgressMessage())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusComplete.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusScoring.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}
