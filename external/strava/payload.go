package strava

import (
	"fmt"
	"strconv"
)

type athletePayload struct {
	ID        athleteID `json:"id"`
	FirstName *string   `json:"firstname"`
	LastName  *string   `json:"lastname"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
}

func (p athletePayload) validate() error {
	if p.FirstName == nil || p.LastName == nil {
		return fmt.Errorf("%w: profile is missing firstname or lastname", errMalformedPayload)
	}
	return nil
}

// athleteID is the numeric athlete id as returned by the API.
type athleteID int64

func (id athleteID) String() string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(int64(id), 10)
}

type effortPayload struct {
	ElapsedTime *int           `json:"elapsed_time"`
	Athlete     *effortAthlete `json:"athlete"`
}

type effortAthlete struct {
	ID int64 `json:"id"`
}
