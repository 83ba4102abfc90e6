package lesson

import (
	"fmt"

	"github.com/abhisek/mathjourney/internal/drills"
)

// Machine is the lesson session state machine. The zero value is not
// usable; call New.
type Machine struct {
	state  State
	plan   Plan
	warmup *drills.Warmup
	store  *drills.Storefront
	angles *drills.AngleBuilder
	stages []Stage
	stage  int
	last   drills.Verdict
}

// New returns an idle machine.
func New() *Machine {
	return &Machine{state: Idle}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Lesson returns the open lesson number, or 0 when idle.
func (m *Machine) Lesson() int {
	if m.state == Idle {
		return 0
	}
	return m.plan.Lesson
}

// Stage returns the active main stage.
func (m *Machine) Stage() (Stage, bool) {
	if m.state != MainActivityActive || m.stage >= len(m.stages) {
		return "", false
	}
	return m.stages[m.stage], true
}

// Points returns the points earned in this session so far.
func (m *Machine) Points() int {
	if m.state == Idle {
		return 0
	}
	return m.warmup.Points() + m.store.Points() + m.angles.Points()
}

// Open starts a session for p.
func (m *Machine) Open(p Plan) error {
	if err := m.expect("open", Idle); err != nil {
		return err
	}
	if p.Content.Empty() {
		return fmt.Errorf("lesson %d: %w", p.Lesson, ErrNoContent)
	}

	m.plan = p
	m.warmup = drills.NewWarmup(p.Content.Warmup)
	m.store = drills.NewStorefront(nil, drills.DefaultSupply)
	m.angles = drills.NewAngleBuilder(nil, nil, 0)
	m.stages = nil
	m.stage = 0
	m.last = drills.Verdict{}

	if sc := p.Content.Store; sc != nil && len(sc.Orders) > 0 {
		m.store = drills.NewStorefront(sc.Orders, sc.Supply)
		m.stages = append(m.stages, StageStorefront)
	}
	if ac := p.Content.Angles; ac != nil && len(ac.Starts) > 0 {
		m.angles = drills.NewAngleBuilder(ac.Starts, ac.HouseParts, ac.CompletionBonus)
		m.stages = append(m.stages, StageAngle)
	}

	switch {
	case !m.warmup.Done():
		m.state = WarmupActive
	case len(m.stages) > 0:
		m.state = MainActivityActive
	default:
		m.state = LessonComplete
	}
	return nil
}

// SubmitAnswer answers the active warm-up prompt.
func (m *Machine) SubmitAnswer(text string) (drills.Verdict, error) {
	if err := m.expect("submit answer", WarmupActive); err != nil {
		return drills.Verdict{}, err
	}
	v := m.warmup.Submit(text)
	m.last = v
	if m.warmup.Done() {
		if len(m.stages) == 0 {
			m.state = LessonComplete
		} else {
			m.state = WarmupComplete
		}
	}
	return v, nil
}

// Continue leaves the warm-up summary for the first main stage.
func (m *Machine) Continue() error {
	if err := m.expect("continue", WarmupComplete); err != nil {
		return err
	}
	m.state = MainActivityActive
	m.stage = 0
	m.last = drills.Verdict{}
	return nil
}

// SelectUnit adds one unit to the apple store basket.
func (m *Machine) SelectUnit(u drills.Unit) error {
	if err := m.expectStage("select unit", StageStorefront); err != nil {
		return err
	}
	return m.store.Select(u)
}

// ClearSelection empties the apple store basket.
func (m *Machine) ClearSelection() error {
	if err := m.expectStage("clear selection", StageStorefront); err != nil {
		return err
	}
	m.store.Clear()
	return nil
}

// SubmitComposition hands the basket to the active customer.
func (m *Machine) SubmitComposition() (drills.Verdict, error) {
	if err := m.expectStage("submit composition", StageStorefront); err != nil {
		return drills.Verdict{}, err
	}
	v := m.store.Submit()
	m.last = v
	if m.store.Done() {
		m.nextStage()
	}
	return v, nil
}

// RotateAngle turns the active angle one step and returns the new angle.
func (m *Machine) RotateAngle(d drills.Direction) (int, error) {
	if err := m.expectStage("rotate angle", StageAngle); err != nil {
		return 0, err
	}
	return m.angles.Rotate(d), nil
}

// SubmitAngle checks the active angle.
func (m *Machine) SubmitAngle() (drills.Verdict, error) {
	if err := m.expectStage("submit angle", StageAngle); err != nil {
		return drills.Verdict{}, err
	}
	v := m.angles.Submit()
	m.last = v
	if m.angles.Done() {
		m.nextStage()
	}
	return v, nil
}

// Finish closes a completed session and returns its result.
func (m *Machine) Finish() (Result, error) {
	if err := m.expect("finish", LessonComplete); err != nil {
		return Result{}, err
	}
	r := Result{
		Lesson:       m.plan.Lesson,
		WarmupPoints: m.warmup.Points(),
		StorePoints:  m.store.Points(),
		AnglePoints:  m.angles.Points(),
	}
	r.Points = r.WarmupPoints + r.StorePoints + r.AnglePoints
	m.reset()
	return r, nil
}

// Abandon discards the open session. It returns the lesson number and the
// points that were given up.
func (m *Machine) Abandon() (lesson, discarded int, err error) {
	if m.state == Idle {
		return 0, 0, fmt.Errorf("%w: abandon in state %s", ErrInvalidEvent, m.state)
	}
	lesson, discarded = m.plan.Lesson, m.Points()
	m.reset()
	return lesson, discarded, nil
}

// Snapshot returns a view of the session.
func (m *Machine) Snapshot() Activity {
	a := Activity{State: m.state}
	if m.state == Idle {
		return a
	}
	a.Lesson = m.plan.Lesson
	a.Title = m.plan.Title
	a.MaxPoints = m.plan.MaxPoints
	a.Points = m.Points()
	a.WarmupPoints = m.warmup.Points()
	a.Last = m.last

	if p, ok := m.warmup.Current(); ok && m.state == WarmupActive {
		a.Warmup = &WarmupView{
			Prompt: p,
			Index:  m.warmup.Index(),
			Len:    m.warmup.Len(),
			Misses: m.warmup.Misses(),
		}
	}

	stage, ok := m.Stage()
	if !ok {
		return a
	}
	a.Stage = stage
	switch stage {
	case StageStorefront:
		o, _ := m.store.Current()
		a.Store = &StoreView{
			Order:     o,
			Position:  m.store.Position(),
			Len:       m.store.Len(),
			Retrying:  m.store.Retrying(),
			Basket:    m.store.Basket(),
			Available: m.store.Available(),
			Misses:    m.store.Misses(),
		}
	case StageAngle:
		a.Angle = &AngleView{
			Angle:    m.angles.Angle(),
			Index:    m.angles.Index(),
			Len:      m.angles.Len(),
			NextPart: m.angles.NextPart(),
			Built:    m.angles.Built(),
			Misses:   m.angles.Misses(),
		}
	}
	return a
}

func (m *Machine) nextStage() {
	m.stage++
	if m.stage >= len(m.stages) {
		m.state = LessonComplete
	}
}

func (m *Machine) reset() {
	*m = Machine{state: Idle}
}

func (m *Machine) expect(event string, want State) error {
	if m.state != want {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidEvent, event, m.state)
	}
	return nil
}

func (m *Machine) expectStage(event string, want Stage) error {
	if err := m.expect(event, MainActivityActive); err != nil {
		return err
	}
	if s, _ := m.Stage(); s != want {
		return fmt.Errorf("%w: %s during %s stage", ErrInvalidEvent, event, s)
	}
	return nil
}
