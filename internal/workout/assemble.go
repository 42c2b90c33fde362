package workout

import "fmt"

// AssembleWorkout folds the denormalized join rows for one lookup key into
// the nested aggregate. It is pure: the same rows always yield the same
// aggregate. No rows means ErrNotFound; rows that disagree on the workout
// identity or its QIC mean the store is inconsistent and yield ErrQuery
// rather than a silently chosen winner.
func AssembleWorkout(rows []JoinedRow) (Workout, error) {
	if len(rows) == 0 {
		return Workout{}, ErrNotFound
	}

	head := rows[0]
	for _, r := range rows[1:] {
		if r.WorkoutID != head.WorkoutID || r.QICName != head.QICName || !equalOptional(r.QICF3Name, head.QICF3Name) {
			return Workout{}, fmt.Errorf("%w: conflicting rows for workout %s %q",
				ErrQuery, head.WorkoutDate.Format("2006-01-02"), head.URLSlug)
		}
	}

	w := Workout{
		WorkoutDate: Date{head.WorkoutDate},
		QIC:         Person{Name: head.QICName, F3Name: head.QICF3Name},
		Pax:         []Person{},
		AOs:         []AO{},
		URLSlug:     head.URLSlug,
	}

	seenPax := make(map[int64]struct{})
	seenAOs := make(map[int64]struct{})
	for _, r := range rows {
		if r.PaxID != nil {
			if _, ok := seenPax[*r.PaxID]; !ok {
				seenPax[*r.PaxID] = struct{}{}
				w.Pax = append(w.Pax, Person{Name: stringValue(r.PaxName), F3Name: r.PaxF3Name})
			}
		}
		if r.AOID != nil {
			if _, ok := seenAOs[*r.AOID]; !ok {
				seenAOs[*r.AOID] = struct{}{}
				w.AOs = append(w.AOs, AO{Name: stringValue(r.AOName), Description: r.AODescription})
			}
		}
	}

	return w, nil
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
