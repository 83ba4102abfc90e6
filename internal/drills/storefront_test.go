package drills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, s *Storefront, tens, ones int) {
	t.Helper()
	for range tens {
		require.NoError(t, s.Select(UnitTen))
	}
	for range ones {
		require.NoError(t, s.Select(UnitOne))
	}
}

func TestCheckComposition(t *testing.T) {
	tests := []struct {
		q, tens, ones int
		want          bool
		total         int
	}{
		{46, 4, 6, true, 46},
		{46, 3, 16, false, 46},
		{46, 4, 5, false, 45},
		{23, 2, 3, true, 23},
		{70, 7, 0, true, 70},
		{7, 0, 7, true, 7},
	}

	for _, tt := range tests {
		ok, total := CheckComposition(tt.q, tt.tens, tt.ones)
		assert.Equal(t, tt.want, ok, "CheckComposition(%d, %d, %d)", tt.q, tt.tens, tt.ones)
		assert.Equal(t, tt.total, total)
	}
}

func TestSupplyCovers(t *testing.T) {
	assert.True(t, DefaultSupply.Covers(89))
	assert.True(t, DefaultSupply.Covers(0))
	assert.False(t, DefaultSupply.Covers(90))
	assert.False(t, DefaultSupply.Covers(-1))
}

func TestStorefront_CorrectOrder(t *testing.T) {
	s := NewStorefront([]Order{{"Mr. Johnson", 23}, {"Ms. Davis", 35}}, DefaultSupply)
	assert.Equal(t, 10, s.MaxPoints())

	fill(t, s, 2, 3)
	assert.Equal(t, Supply{Tens: 6, Ones: 6}, s.Available())

	v := s.Submit()
	assert.True(t, v.Correct)
	assert.Equal(t, OrderPoints, v.Awarded)
	assert.False(t, v.Done)
	assert.Contains(t, v.Feedback, "2 baskets + 3 singles = 23")

	// Supply and basket are restored for the next customer.
	assert.Equal(t, DefaultSupply, s.Available())
	assert.Equal(t, Supply{}, s.Basket())

	o, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Ms. Davis", o.Customer)
}

func TestStorefront_NonCanonicalRejected(t *testing.T) {
	s := NewStorefront([]Order{{"Mrs. Smith", 46}}, Supply{Tens: 8, Ones: 20})

	fill(t, s, 3, 16)
	v := s.Submit()
	assert.False(t, v.Correct)
	assert.Contains(t, v.Feedback, "Right total, but use 4 baskets and 6 singles!")
	assert.Equal(t, 0, s.Points())

	s.Clear()
	fill(t, s, 4, 6)
	v = s.Submit()
	assert.True(t, v.Correct)
}

func TestStorefront_WrongTotalFeedback(t *testing.T) {
	s := NewStorefront([]Order{{"Mrs. Smith", 46}}, DefaultSupply)
	fill(t, s, 4, 5)

	v := s.Submit()
	assert.False(t, v.Correct)
	assert.Equal(t, "That's 45 apples, but they asked for 46.\nTry again!", v.Feedback)

	// The basket is left alone so the learner can fix it.
	assert.Equal(t, Supply{Tens: 4, Ones: 5}, s.Basket())
}

func TestStorefront_RetryQueue(t *testing.T) {
	s := NewStorefront([]Order{{"A", 12}, {"B", 34}}, DefaultSupply)

	// Two misses on A only queue it once.
	s.Submit()
	s.Submit()
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Misses())

	fill(t, s, 1, 2)
	require.True(t, s.Submit().Correct)

	fill(t, s, 3, 4)
	v := s.Submit()
	require.True(t, v.Correct)
	assert.False(t, v.Done, "A comes back as a retry")

	o, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "A", o.Customer)
	assert.True(t, s.Retrying())

	// A miss during the retry pass does not queue it again.
	s.Submit()
	assert.Equal(t, 3, s.Len())

	s.Clear()
	fill(t, s, 1, 2)
	v = s.Submit()
	assert.True(t, v.Correct)
	assert.True(t, v.Done)
	assert.Equal(t, 15, s.Points())
}

func TestStorefront_SupplyExhausted(t *testing.T) {
	s := NewStorefront([]Order{{"A", 12}}, Supply{Tens: 1, Ones: 0})

	require.NoError(t, s.Select(UnitTen))
	assert.ErrorIs(t, s.Select(UnitTen), ErrSupplyExhausted)
	assert.ErrorIs(t, s.Select(UnitOne), ErrSupplyExhausted)
	assert.ErrorIs(t, s.Select(Unit("crate")), ErrUnknownUnit)

	s.Clear()
	assert.Equal(t, Supply{Tens: 1}, s.Available())
	assert.Equal(t, Supply{}, s.Basket())
}

func TestUnitValue(t *testing.T) {
	assert.Equal(t, 10, UnitTen.Value())
	assert.Equal(t, 1, UnitOne.Value())
	assert.Equal(t, 0, Unit("crate").Value())
}
