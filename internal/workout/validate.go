package workout

import (
	"fmt"
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// NewWorkoutKey validates raw lookup parameters and returns the typed key
// the store layer consumes. Invalid input yields a *ValidationError; the
// store is never queried with an unvalidated key.
func NewWorkoutKey(year, month, day int, urlSlug string) (WorkoutKey, error) {
	if year < 2000 || year > 9999 {
		return WorkoutKey{}, &ValidationError{Field: "year", Reason: "Year must be between 2000 and 9999"}
	}
	if month < 1 || month > 12 {
		return WorkoutKey{}, &ValidationError{Field: "month", Reason: "Month must be between 1 and 12"}
	}
	if day < 1 || day > 31 {
		return WorkoutKey{}, &ValidationError{Field: "day", Reason: "Day must be between 1 and 31"}
	}

	// time.Date normalizes overflow (Feb 30 becomes Mar 1/2), so a changed
	// component means the combination was not a real calendar date.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return WorkoutKey{}, &ValidationError{
			Field:  "day",
			Reason: fmt.Sprintf("Invalid date: %04d-%02d-%02d is not a valid calendar date", year, month, day),
		}
	}

	if !slugPattern.MatchString(urlSlug) {
		return WorkoutKey{}, &ValidationError{
			Field:  "url_slug",
			Reason: "URL slug must be a non-empty string of unreserved URL characters",
		}
	}

	return WorkoutKey{Date: date, URLSlug: urlSlug}, nil
}
