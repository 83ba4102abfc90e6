package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/drills"
)

func prompts(t *testing.T, texts ...string) []drills.Prompt {
	t.Helper()
	var out []drills.Prompt
	for _, s := range texts {
		p, err := drills.NewPrompt(s, drills.CategoryNumber)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func fullPlan(t *testing.T) Plan {
	return Plan{
		Lesson: 7,
		Title:  "Test",
		Content: catalog.Content{
			Warmup: prompts(t, "1", "2"),
			Store: &catalog.StoreContent{
				Supply: drills.DefaultSupply,
				Orders: []drills.Order{{Customer: "Ann", Quantity: 23}},
			},
			Angles: &catalog.AngleContent{
				Starts:     []int{85},
				HouseParts: []string{"Roof"},
			},
		},
	}
}

func TestMachine_FullLesson(t *testing.T) {
	m := New()
	require.NoError(t, m.Open(fullPlan(t)))
	assert.Equal(t, WarmupActive, m.State())
	assert.Equal(t, 7, m.Lesson())

	a := m.Snapshot()
	require.NotNil(t, a.Warmup)
	assert.Equal(t, "1", a.Warmup.Prompt.Text)

	v, err := m.SubmitAnswer("2")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	v, err = m.SubmitAnswer("3")
	require.NoError(t, err)
	assert.True(t, v.Done)
	assert.Equal(t, WarmupComplete, m.State())
	assert.Equal(t, 3, m.Points())

	require.NoError(t, m.Continue())
	assert.Equal(t, MainActivityActive, m.State())
	stage, ok := m.Stage()
	require.True(t, ok)
	assert.Equal(t, StageStorefront, stage)

	require.NoError(t, m.SelectUnit(drills.UnitTen))
	require.NoError(t, m.SelectUnit(drills.UnitTen))
	for range 3 {
		require.NoError(t, m.SelectUnit(drills.UnitOne))
	}
	a = m.Snapshot()
	require.NotNil(t, a.Store)
	assert.Equal(t, drills.Supply{Tens: 2, Ones: 3}, a.Store.Basket)

	v, err = m.SubmitComposition()
	require.NoError(t, err)
	assert.True(t, v.Correct)

	stage, _ = m.Stage()
	assert.Equal(t, StageAngle, stage)

	angle, err := m.RotateAngle(drills.CounterClockwise)
	require.NoError(t, err)
	assert.Equal(t, 90, angle)
	v, err = m.SubmitAngle()
	require.NoError(t, err)
	assert.True(t, v.Done)
	assert.Equal(t, LessonComplete, m.State())

	r, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, Result{Lesson: 7, Points: 18, WarmupPoints: 3, StorePoints: 5, AnglePoints: 10}, r)
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, 0, m.Points())
}

func TestMachine_InvalidEvents(t *testing.T) {
	m := New()

	_, err := m.SubmitAnswer("x")
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.ErrorIs(t, m.Continue(), ErrInvalidEvent)
	assert.ErrorIs(t, m.SelectUnit(drills.UnitOne), ErrInvalidEvent)
	_, err = m.Finish()
	assert.ErrorIs(t, err, ErrInvalidEvent)
	_, _, err = m.Abandon()
	assert.ErrorIs(t, err, ErrInvalidEvent)

	require.NoError(t, m.Open(fullPlan(t)))
	assert.ErrorIs(t, m.Open(fullPlan(t)), ErrInvalidEvent, "already open")

	_, err = m.SubmitAngle()
	assert.ErrorIs(t, err, ErrInvalidEvent)
	_, err = m.RotateAngle(drills.Clockwise)
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.ErrorIs(t, m.ClearSelection(), ErrInvalidEvent)

	// Wrong stage inside the main activity.
	m.SubmitAnswer("2")
	m.SubmitAnswer("3")
	require.NoError(t, m.Continue())
	_, err = m.SubmitAngle()
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Equal(t, MainActivityActive, m.State())
}

func TestMachine_WrongAnswersKeepState(t *testing.T) {
	m := New()
	require.NoError(t, m.Open(fullPlan(t)))

	v, err := m.SubmitAnswer("nine")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, WarmupActive, m.State())
	assert.Equal(t, 0, m.Points())

	a := m.Snapshot()
	assert.Equal(t, 0, a.Warmup.Index)
	assert.Equal(t, 1, a.Warmup.Misses)
	assert.False(t, a.Last.Correct)
}

func TestMachine_WarmupOnly(t *testing.T) {
	m := New()
	require.NoError(t, m.Open(Plan{Lesson: 1, Content: catalog.Content{Warmup: prompts(t, "5")}}))

	_, err := m.SubmitAnswer("6")
	require.NoError(t, err)
	assert.Equal(t, LessonComplete, m.State(), "no main stages to continue to")

	r, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Points)
}

func TestMachine_NoWarmup(t *testing.T) {
	m := New()
	require.NoError(t, m.Open(Plan{Lesson: 2, Content: catalog.Content{
		Angles: &catalog.AngleContent{Starts: []int{90}, HouseParts: []string{"Door"}},
	}}))
	assert.Equal(t, MainActivityActive, m.State())

	a := m.Snapshot()
	require.NotNil(t, a.Angle)
	assert.Equal(t, "Door", a.Angle.NextPart)
	assert.Nil(t, a.Store)
	assert.Nil(t, a.Warmup)
}

func TestMachine_OpenEmptyPlan(t *testing.T) {
	m := New()
	err := m.Open(Plan{Lesson: 30})
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Equal(t, Idle, m.State())
}

func TestMachine_Abandon(t *testing.T) {
	m := New()
	require.NoError(t, m.Open(fullPlan(t)))
	m.SubmitAnswer("2")

	lesson, discarded, err := m.Abandon()
	require.NoError(t, err)
	assert.Equal(t, 7, lesson)
	assert.Equal(t, 1, discarded)
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, Activity{State: Idle}, m.Snapshot())

	// A fresh session starts from scratch.
	require.NoError(t, m.Open(fullPlan(t)))
	assert.Equal(t, 0, m.Points())
}

func TestMachine_SupplyErrorPassesThrough(t *testing.T) {
	m := New()
	plan := fullPlan(t)
	plan.Content.Warmup = nil
	plan.Content.Store.Supply = drills.Supply{Tens: 1, Ones: 1}
	require.NoError(t, m.Open(plan))

	require.NoError(t, m.SelectUnit(drills.UnitTen))
	assert.ErrorIs(t, m.SelectUnit(drills.UnitTen), drills.ErrSupplyExhausted)
	require.NoError(t, m.ClearSelection())
	assert.Equal(t, drills.Supply{Tens: 1, Ones: 1}, m.Snapshot().Store.Available)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "main-activity", MainActivityActive.String())
	assert.Equal(t, "unknown", State(99).String())
}
