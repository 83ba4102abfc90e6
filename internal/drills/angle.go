package drills

import "fmt"

// Angle drill rules.
const (
	AngleStep   = 5
	TargetAngle = 90
	CloseBand   = 10
	AnglePoints = 10
)

// Direction is a rotation step.
type Direction int

const (
	Clockwise        Direction = -1
	CounterClockwise Direction = 1
)

// DefaultHouseParts are built in order, one per right angle.
var DefaultHouseParts = []string{"Foundation", "Left Wall", "Right Wall", "Roof", "Door"}

// WrapAngle maps any angle into [0, 360).
func WrapAngle(deg int) int {
	return ((deg % 360) + 360) % 360
}

// angleDistance is the shortest rotation between a and b.
func angleDistance(a, b int) int {
	d := WrapAngle(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// AngleBuilder runs the right-angle house drill: each starting angle must
// be turned to exactly 90 degrees.
type AngleBuilder struct {
	starts []int
	parts  []string
	bonus  int
	index  int
	angle  int
	built  []string
	points int
	misses int
}

// NewAngleBuilder returns a drill over starting angles. Each success
// builds the next house part; bonus is added when the last one is built.
func NewAngleBuilder(starts []int, parts []string, bonus int) *AngleBuilder {
	b := &AngleBuilder{
		starts: append([]int(nil), starts...),
		parts:  append([]string(nil), parts...),
		bonus:  bonus,
	}
	if len(b.starts) > 0 {
		b.angle = WrapAngle(b.starts[0])
	}
	return b
}

// Angle returns the current angle in degrees.
func (b *AngleBuilder) Angle() int { return b.angle }

// Index returns the zero-based challenge number.
func (b *AngleBuilder) Index() int { return b.index }

// Len returns the number of challenges.
func (b *AngleBuilder) Len() int { return len(b.starts) }

// Built returns the house parts finished so far.
func (b *AngleBuilder) Built() []string { return append([]string(nil), b.built...) }

// NextPart returns the part the active challenge will build.
func (b *AngleBuilder) NextPart() string {
	if b.index < len(b.parts) {
		return b.parts[b.index]
	}
	return fmt.Sprintf("Part %d", b.index+1)
}

// Done reports whether every challenge is complete.
func (b *AngleBuilder) Done() bool { return b.index >= len(b.starts) }

// Points returns the points earned so far.
func (b *AngleBuilder) Points() int { return b.points }

// Misses returns consecutive wrong submissions on the active challenge.
func (b *AngleBuilder) Misses() int { return b.misses }

// MaxPoints returns the most the drill can earn.
func (b *AngleBuilder) MaxPoints() int {
	if len(b.starts) == 0 {
		return 0
	}
	return len(b.starts)*AnglePoints + b.bonus
}

// Rotate turns the angle one step in the given direction.
func (b *AngleBuilder) Rotate(d Direction) int {
	if b.Done() {
		return b.angle
	}
	step := AngleStep
	if d < 0 {
		step = -AngleStep
	}
	b.angle = WrapAngle(b.angle + step)
	return b.angle
}

// Submit checks the current angle. Only exactly 90 degrees is accepted;
// being close changes the feedback, not the verdict.
func (b *AngleBuilder) Submit() Verdict {
	if b.Done() {
		return Verdict{Done: true}
	}

	if b.angle != TargetAngle {
		b.misses++
		off := angleDistance(b.angle, TargetAngle)
		if off < CloseBand {
			return Verdict{Close: true, Feedback: fmt.Sprintf(
				"Very close! You're only %d° away from 90°", off)}
		}
		return Verdict{Feedback: fmt.Sprintf(
			"Not quite. A right angle is exactly 90°. You have %d°", b.angle)}
	}

	part := b.NextPart()
	b.built = append(b.built, part)
	b.index++
	b.misses = 0
	v := Verdict{
		Correct:  true,
		Awarded:  AnglePoints,
		Feedback: fmt.Sprintf("Perfect! That's exactly 90°! %s built!", part),
	}
	if b.Done() {
		v.Done = true
		v.Awarded += b.bonus
		v.Feedback = "The house is finished!"
	} else {
		b.angle = WrapAngle(b.starts[b.index])
	}
	b.points += v.Awarded
	return v
}
