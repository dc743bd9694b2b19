package group

import (
	"fmt"
	"strings"
)

// Group is a fixed, ordered set of athletes compared on a segment.
type Group struct {
	ID         int
	Name       string
	AthleteIDs []string
}

func (g Group) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("group id must be > 0, got %d", g.ID)
	}
	if len(g.AthleteIDs) == 0 {
		return fmt.Errorf("group %d has no athletes", g.ID)
	}
	seen := make(map[string]struct{}, len(g.AthleteIDs))
	for i, id := range g.AthleteIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return fmt.Errorf("group %d athlete #%d is blank", g.ID, i+1)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("group %d lists athlete %s twice", g.ID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// DisplayName falls back to "Group <id>" when no name is configured.
func (g Group) DisplayName() string {
	if name := strings.TrimSpace(g.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Group %d", g.ID)
}
