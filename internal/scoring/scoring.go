// Package scoring maps a cumulative point total onto levels and the
// mountain climb shown on the home screen.
package scoring

// PointsPerLevel is the number of points needed to climb one level.
const PointsPerLevel = 100

// LevelFor returns the level reached with the given point total.
// Levels start at 1.
func LevelFor(totalPoints int) int {
	return clamp(totalPoints)/PointsPerLevel + 1
}

// ProgressFractionFor returns how far the learner is through the current
// level, in [0, 1).
func ProgressFractionFor(totalPoints int) float64 {
	return float64(clamp(totalPoints)%PointsPerLevel) / PointsPerLevel
}

// PointsToNextLevel returns the points still needed to reach the next level.
// It is never zero.
func PointsToNextLevel(totalPoints int) int {
	return PointsPerLevel - clamp(totalPoints)%PointsPerLevel
}

// Milestone names the stretch of the mountain a learner is on.
type Milestone string

const (
	MilestoneBaseCamp Milestone = "base camp"
	MilestoneForest   Milestone = "forest trail"
	MilestoneRidge    Milestone = "rocky ridge"
	MilestoneSummit   Milestone = "summit push"
)

// MilestoneFor returns the milestone for the learner's position within the
// current level.
func MilestoneFor(totalPoints int) Milestone {
	switch f := ProgressFractionFor(totalPoints); {
	case f >= 0.75:
		return MilestoneSummit
	case f >= 0.50:
		return MilestoneRidge
	case f >= 0.25:
		return MilestoneForest
	default:
		return MilestoneBaseCamp
	}
}

func clamp(totalPoints int) int {
	if totalPoints < 0 {
		return 0
	}
	return totalPoints
}
