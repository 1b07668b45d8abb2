package quests

import (
	"time"
)

// StreakPolicy decides the new current streak whenever a quest completes.
type StreakPolicy interface {
	// Next returns the updated streak count given the streak before this
	// completion, the previous completion time (zero when none exists) and
	// the time of the completion being recorded.
	Next(current int, lastCompletedAt, now time.Time) int
}

// perCompletionStreak increments the streak on every completion regardless of
// timing. This is the default policy.
type perCompletionStreak struct{}

func NewPerCompletionStreak() StreakPolicy { return perCompletionStreak{} }

func (perCompletionStreak) Next(current int, _, _ time.Time) int {
	return current + 1
}

// dayBoundaryStreak counts at most one increment per calendar day and resets
// when more than one day has passed since the previous completion. Available
// as an alternative policy; not wired in by default.
type dayBoundaryStreak struct {
	loc *time.Location
}

func NewDayBoundaryStreak(loc *time.Location) StreakPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return dayBoundaryStreak{loc: loc}
}

func (p dayBoundaryStreak) Next(current int, lastCompletedAt, now time.Time) int {
	if lastCompletedAt.IsZero() || current == 0 {
		return 1
	}
	last := dayStart(lastCompletedAt.In(p.loc))
	today := dayStart(now.In(p.loc))
	switch days := int(today.Sub(last).Hours() / 24); {
	case days == 0:
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
