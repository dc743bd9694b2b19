package segment

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the opaque segment token issued by the segment API. It is kept as
// the decimal string the API uses in URLs.
type ID string

func ParseID(raw string) (ID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("segment id is required")
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("segment id %q must be a positive integer", raw)
	}
	return ID(strconv.FormatInt(n, 10)), nil
}

func (id ID) String() string {
	return string(id)
}

// Effort is one timed attempt on a segment. AthleteID is empty when the API
// omitted it.
type Effort struct {
	AthleteID   string
	ElapsedTime int
}

// BestTime returns the minimum elapsed time; ok is false for no efforts.
func BestTime(efforts []Effort) (best int, ok bool) {
	for i, effort := range efforts {
		if i == 0 || effort.ElapsedTime < best {
			best = effort.ElapsedTime
		}
	}
	return best, len(efforts) > 0
}

// FormatElapsed renders seconds as h:mm:ss or m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
