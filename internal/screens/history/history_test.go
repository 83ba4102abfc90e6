package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/store"
)

type fakeSource struct {
	events []store.LessonEvent
	stats  []store.ActivityStat
	err    error
}

func (f *fakeSource) QueryLessonEvents(context.Context, store.QueryOpts) ([]store.LessonEvent, error) {
	return f.events, f.err
}

func (f *fakeSource) ActivityAccuracy(context.Context) ([]store.ActivityStat, error) {
	return f.stats, nil
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestHistoryShowsEvents(t *testing.T) {
	src := &fakeSource{
		events: []store.LessonEvent{
			{Timestamp: time.Now(), LessonEventData: store.LessonEventData{
				Title: "Tens and Ones", Action: store.ActionComplete, Points: 15, TotalPoints: 15}},
			{Timestamp: time.Now(), LessonEventData: store.LessonEventData{
				Title: "Tens and Ones", Action: store.ActionStart}},
		},
		stats: []store.ActivityStat{{Activity: "warmup", Attempts: 10, Correct: 9}},
	}
	s := New(src)
	load(t, s)

	view := s.View(100, 20)
	for _, want := range []string{"completed  +15 pts", "started", "Warm-up 90%"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	s := New(&fakeSource{})
	load(t, s)
	if !strings.Contains(s.View(80, 20), "No lessons yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryError(t *testing.T) {
	s := New(&fakeSource{err: errors.New("db gone")})
	load(t, s)
	if !strings.Contains(s.View(80, 20), "db gone") {
		t.Error("expected error message")
	}
}

func TestHistoryNavigation(t *testing.T) {
	s := New(&fakeSource{events: make([]store.LessonEvent, 3)})
	load(t, s)

	down := tea.KeyPressMsg{Code: tea.KeyDown}
	s.Update(down)
	s.Update(down)
	s.Update(down)
	if s.selected != 2 {
		t.Errorf("expected cursor at 2, got %d", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
