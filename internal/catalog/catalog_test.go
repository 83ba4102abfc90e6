package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathjourney/internal/progress"
)

func threeLessons() *Catalog {
	return New([]Lesson{
		{Number: 1, Title: "One", MaxPoints: 10},
		{Number: 2, Title: "Two", MaxPoints: 10},
		{Number: 3, Title: "Three", MaxPoints: 10},
	})
}

func stateWith(completed []int, scores map[int]int) progress.State {
	st := progress.Zero(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	st.CompletedLessons = completed
	st.LessonScores = scores
	return st.Normalize()
}

func assertUnlockInvariant(t *testing.T, c *Catalog) {
	t.Helper()
	ls := c.Lessons()
	for i, l := range ls {
		want := i == 0 || ls[i-1].IsCompleted
		assert.Equal(t, want, l.IsUnlocked, "lesson %d unlocked", l.Number)
	}
}

func TestNew_FirstUnlocked(t *testing.T) {
	c := threeLessons()
	ls := c.Lessons()
	assert.True(t, ls[0].IsUnlocked)
	assert.False(t, ls[1].IsUnlocked)
	assert.False(t, ls[2].IsUnlocked)
	assertUnlockInvariant(t, c)
}

func TestApplyProgress(t *testing.T) {
	c := threeLessons()
	c.ApplyProgress(stateWith([]int{1}, map[int]int{1: 8}))

	ls := c.Lessons()
	assert.True(t, ls[0].IsCompleted)
	assert.Equal(t, 8, ls[0].EarnedPoints)
	assert.True(t, ls[1].IsUnlocked)
	assert.False(t, ls[1].IsCompleted)
	assert.False(t, ls[2].IsUnlocked)
	assertUnlockInvariant(t, c)
}

func TestApplyProgress_Idempotent(t *testing.T) {
	states := []progress.State{
		stateWith(nil, nil),
		stateWith([]int{1}, map[int]int{1: 5}),
		stateWith([]int{1, 2}, map[int]int{1: 5, 2: 10}),
		stateWith([]int{2}, map[int]int{2: 3}),
	}

	for _, st := range states {
		c := threeLessons()
		c.ApplyProgress(st)
		first := c.Lessons()
		c.ApplyProgress(st)
		assert.Equal(t, first, c.Lessons())
		assertUnlockInvariant(t, c)
	}
}

func TestApplyProgress_ClearsStaleFlags(t *testing.T) {
	c := threeLessons()
	c.ApplyProgress(stateWith([]int{1, 2}, map[int]int{1: 5, 2: 10}))
	c.ApplyProgress(stateWith(nil, nil))

	for _, l := range c.Lessons() {
		assert.False(t, l.IsCompleted)
		assert.Zero(t, l.EarnedPoints)
	}
	assertUnlockInvariant(t, c)
}

func TestApplyProgress_CompletedOutOfOrder(t *testing.T) {
	// Lesson 2 completed without lesson 1 (e.g. a hand-edited record):
	// lesson 3 opens, lesson 2 stays locked.
	c := threeLessons()
	c.ApplyProgress(stateWith([]int{2}, map[int]int{2: 3}))

	ls := c.Lessons()
	assert.False(t, ls[1].IsUnlocked)
	assert.True(t, ls[2].IsUnlocked)
	assertUnlockInvariant(t, c)
}

func TestMarkCompleted(t *testing.T) {
	c := threeLessons()
	require.NoError(t, c.MarkCompleted(1, 9))

	l, ok := c.Lookup(1)
	require.True(t, ok)
	assert.True(t, l.IsCompleted)
	assert.Equal(t, 9, l.EarnedPoints)

	next, _ := c.Lookup(2)
	assert.True(t, next.IsUnlocked)
	assertUnlockInvariant(t, c)

	// The last lesson has nothing after it.
	require.NoError(t, c.MarkCompleted(3, 1))
}

func TestMarkCompleted_UnknownLesson(t *testing.T) {
	c := threeLessons()
	before := c.Lessons()

	err := c.MarkCompleted(42, 10)
	assert.ErrorIs(t, err, ErrUnknownLesson)
	assert.Equal(t, before, c.Lessons())
}

func TestLessons_ReturnsCopy(t *testing.T) {
	c := threeLessons()
	ls := c.Lessons()
	ls[1].IsUnlocked = true

	l, _ := c.Lookup(2)
	assert.False(t, l.IsUnlocked)
}

func TestNextUnlocked(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	l, ok := c.NextUnlocked()
	require.True(t, ok)
	assert.Equal(t, 29, l.Number)

	require.NoError(t, c.MarkCompleted(29, 100))
	_, ok = c.NextUnlocked()
	assert.False(t, ok, "lesson 30 has no content yet")
}
