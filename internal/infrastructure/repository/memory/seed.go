package memory

import "github.com/riskibarqy/segment-leaderboard/internal/domain/group"

const (
	GroupIDSegmentOfTheWeek = 1
	DefaultSegmentID        = "8428538"
)

// SeedGroups is the built-in registry used when no groups file is configured.
func SeedGroups() []group.Group {
	return []group.Group{
		{
			ID:         GroupIDSegmentOfTheWeek,
			Name:       "Segment of the Week",
			AthleteIDs: []string{"4634808", "2861283", "3919949", "1469231"},
		},
	}
}
