package drills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotateTo(b *AngleBuilder, target int) {
	for b.Angle() != target {
		b.Rotate(CounterClockwise)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0},
		{360, 0},
		{363, 3},
		{-3, 357},
		{-365, 355},
		{725, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapAngle(tt.in), "WrapAngle(%d)", tt.in)
	}
}

func TestAngleBuilder_RotateWraps(t *testing.T) {
	b := NewAngleBuilder([]int{358}, DefaultHouseParts, 0)
	assert.Equal(t, 3, b.Rotate(CounterClockwise))

	b = NewAngleBuilder([]int{2}, DefaultHouseParts, 0)
	assert.Equal(t, 357, b.Rotate(Clockwise))
}

func TestAngleBuilder_OnlyExactNinety(t *testing.T) {
	b := NewAngleBuilder([]int{80}, DefaultHouseParts, 0)

	b.Rotate(CounterClockwise) // 85
	v := b.Submit()
	assert.False(t, v.Correct)
	assert.True(t, v.Close)
	assert.Equal(t, "Very close! You're only 5° away from 90°", v.Feedback)

	b.Rotate(CounterClockwise)
	b.Rotate(CounterClockwise) // 95
	v = b.Submit()
	assert.False(t, v.Correct)
	assert.True(t, v.Close)

	b.Rotate(Clockwise) // 90
	v = b.Submit()
	assert.True(t, v.Correct)
	assert.Equal(t, AnglePoints, v.Awarded)
}

func TestAngleBuilder_FarFeedback(t *testing.T) {
	b := NewAngleBuilder([]int{45}, DefaultHouseParts, 0)
	v := b.Submit()
	assert.False(t, v.Correct)
	assert.False(t, v.Close)
	assert.Equal(t, "Not quite. A right angle is exactly 90°. You have 45°", v.Feedback)
	assert.Equal(t, 45, b.Angle(), "a miss keeps the angle")
	assert.Equal(t, 1, b.Misses())
}

func TestAngleBuilder_BuildsHouse(t *testing.T) {
	starts := []int{45, 135, 30, 120, 60}
	b := NewAngleBuilder(starts, DefaultHouseParts, 0)
	assert.Equal(t, 50, b.MaxPoints())

	for i, start := range starts {
		require.Equal(t, start, b.Angle())
		assert.Equal(t, DefaultHouseParts[i], b.NextPart())
		rotateTo(b, TargetAngle)
		v := b.Submit()
		require.True(t, v.Correct)
		assert.Equal(t, i == len(starts)-1, v.Done)
	}

	assert.True(t, b.Done())
	assert.Equal(t, 50, b.Points())
	assert.Equal(t, DefaultHouseParts, b.Built())
}

func TestAngleBuilder_CompletionBonus(t *testing.T) {
	b := NewAngleBuilder([]int{90, 90}, DefaultHouseParts, 7)
	assert.Equal(t, 27, b.MaxPoints())

	assert.Equal(t, 10, b.Submit().Awarded)
	v := b.Submit()
	assert.True(t, v.Done)
	assert.Equal(t, 17, v.Awarded)
	assert.Equal(t, 27, b.Points())
}

func TestAngleBuilder_DoneIgnoresInput(t *testing.T) {
	b := NewAngleBuilder(nil, nil, 0)
	assert.True(t, b.Done())
	assert.Equal(t, 0, b.Rotate(Clockwise))
	assert.True(t, b.Submit().Done)
	assert.Zero(t, b.MaxPoints())
}
