package workout

import (
	"strings"
	"time"
)

// Date is a civil date. It marshals as YYYY-MM-DD to match the persisted
// workout_date column and the public payload shape.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := time.Parse("2006-01-02", strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Person is a QIC or PAX. F3Name is the optional nickname assigned within
// the organization and serializes as null when absent.
type Person struct {
	Name   string  `json:"name"`
	F3Name *string `json:"f3_name"`
}

// AO is one named activity segment of a workout.
type AO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Workout is the assembled aggregate for one (date, url_slug) key: exactly
// one QIC, the distinct set of PAX and the ordered distinct AO sequence.
type Workout struct {
	WorkoutDate Date     `json:"workout_date"`
	QIC         Person   `json:"qic"`
	Pax         []Person `json:"pax"`
	AOs         []AO     `json:"aos"`
	URLSlug     string   `json:"url_slug"`
}

// WorkoutKey is the validated lookup key. Construct it with NewWorkoutKey so
// the date and slug invariants hold before the store is touched.
type WorkoutKey struct {
	Date    time.Time
	URLSlug string
}

// SearchRequest carries the POST body form of the lookup parameters.
type SearchRequest struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	URLSlug string `json:"url_slug"`
}

// WorkoutResponse is the fixed envelope every workout endpoint returns.
type WorkoutResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *Workout `json:"data,omitempty"`
}

// JoinedRow is one denormalized row of the lookup join: the workout columns
// repeated per participant x segment combination, with participant and
// segment columns nullable where the LEFT JOIN found nothing.
type JoinedRow struct {
	WorkoutID     int64
	WorkoutDate   time.Time
	URLSlug       string
	QICName       string
	QICF3Name     *string
	PaxID         *int64
	PaxName       *string
	PaxF3Name     *string
	AOID          *int64
	AOName        *string
	AODescription *string
}
