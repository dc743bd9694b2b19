package athlete

import (
	"fmt"
	"strings"
)

// Athlete is a profile fetched from the segment API. Values are immutable
// once built and live only for the request that loaded them.
type Athlete struct {
	ID        string
	FirstName string
	LastName  string
}

func (a Athlete) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}

func (a Athlete) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("athlete id is required")
	}
	if strings.TrimSpace(a.FirstName) == "" && strings.TrimSpace(a.LastName) == "" {
		return fmt.Errorf("athlete %s has no name", a.ID)
	}
	return nil
}
