package leaderboard

import (
	"sort"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/athlete"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/segment"
)

// Entry is one ranked row. Position is 1-based and follows slice order.
type Entry struct {
	Position int
	Athlete  athlete.Athlete
	BestTime int
}

func (e Entry) FormattedTime() string {
	return segment.FormatElapsed(e.BestTime)
}

// Leaderboard holds every input athlete exactly once: in Ranked when a time
// was recorded, in NoTimes otherwise.
type Leaderboard struct {
	SegmentID segment.ID
	Ranked    []Entry
	NoTimes   []athlete.Athlete
}

func (l Leaderboard) Size() int {
	return len(l.Ranked) + len(l.NoTimes)
}

func (l Leaderboard) IsEmpty() bool {
	return l.Size() == 0
}

// Outcome is the per-athlete result of an effort lookup.
type Outcome struct {
	Athlete  athlete.Athlete
	BestTime int
	HasTime  bool
}

func TimedOutcome(a athlete.Athlete, best int) Outcome {
	return Outcome{Athlete: a, BestTime: best, HasTime: true}
}

func NoTimeOutcome(a athlete.Athlete) Outcome {
	return Outcome{Athlete: a}
}

// Rank partitions outcomes and sorts the timed ones ascending. Equal times
// keep input order, as does NoTimes.
func Rank(segmentID segment.ID, outcomes []Outcome) Leaderboard {
	ranked := make([]Entry, 0, len(outcomes))
	noTimes := make([]athlete.Athlete, 0)
	for _, outcome := range outcomes {
		if !outcome.HasTime {
			noTimes = append(noTimes, outcome.Athlete)
			continue
		}
		ranked = append(ranked, Entry{Athlete: outcome.Athlete, BestTime: outcome.BestTime})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].BestTime < ranked[j].BestTime })
	for i := range ranked {
		ranked[i].Position = i + 1
	}

	return Leaderboard{
		SegmentID: segmentID,
		Ranked:    ranked,
		NoTimes:   noTimes,
	}
}
