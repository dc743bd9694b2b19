package httpapi

import (
	"github.com/riskibarqy/segment-leaderboard/internal/domain/athlete"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/leaderboard"
)

type groupDTO struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	AthleteIDs []string `json:"athleteIds"`
}

type athleteDTO struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
}

type leaderboardEntryDTO struct {
	Position      int        `json:"position"`
	Athlete       athleteDTO `json:"athlete"`
	BestTime      int        `json:"bestTimeSeconds"`
	FormattedTime string     `json:"formattedTime"`
}

type leaderboardDTO struct {
	Group     groupDTO              `json:"group"`
	SegmentID string                `json:"segmentId"`
	Ranked    []leaderboardEntryDTO `json:"ranked"`
	NoTimes   []athleteDTO          `json:"noTimes"`
}

func groupToDTO(g group.Group) groupDTO {
	ids := make([]string, len(g.AthleteIDs))
	copy(ids, g.AthleteIDs)
	return groupDTO{
		ID:         g.ID,
		Name:       g.DisplayName(),
		AthleteIDs: ids,
	}
}

func athleteToDTO(a athlete.Athlete) athleteDTO {
	return athleteDTO{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DisplayName: a.DisplayName(),
	}
}

func leaderboardToDTO(g group.Group, board leaderboard.Leaderboard) leaderboardDTO {
	out := leaderboardDTO{
		Group:     groupToDTO(g),
		SegmentID: board.SegmentID.String(),
		Ranked:    make([]leaderboardEntryDTO, 0, len(board.Ranked)),
		NoTimes:   make([]athleteDTO, 0, len(board.NoTimes)),
	}
	for _, entry := range board.Ranked {
		out.Ranked = append(out.Ranked, leaderboardEntryDTO{
			Position:      entry.Position,
			Athlete:       athleteToDTO(entry.Athlete),
			BestTime:      entry.BestTime,
			FormattedTime: entry.FormattedTime(),
		})
	}
	for _, a := range board.NoTimes {
		out.NoTimes = append(out.NoTimes, athleteToDTO(a))
	}
	return out
}
