package workout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/f3rva/f3rva-workout-service/internal/db"
)

// Service answers read-only workout lookups against the relational store.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// workoutJoinQuery fetches a workout with its participants and segments in
// one round trip. The LEFT JOINs keep workouts without PAX or AOs visible;
// the ORDER BY pins row order so assembly is deterministic.
const workoutJoinQuery = `
	SELECT w.id, w.workout_date, w.url_slug, w.qic_name, w.qic_f3_name,
	       p.id, p.pax_name, p.f3_name,
	       a.id, a.aos_name, a.description
	FROM workouts w
	LEFT JOIN workout_pax wp ON wp.workout_id = w.id
	LEFT JOIN pax p ON p.id = wp.pax_id
	LEFT JOIN workout_aos wa ON wa.workout_id = w.id
	LEFT JOIN aos a ON a.id = wa.aos_id
	WHERE w.workout_date = $1 AND w.url_slug = $2
	ORDER BY p.id, a.id`

// GetWorkout looks up the workout for a validated key. It issues exactly one
// query and assembles the aggregate from the returned rows. Failures map to
// the package sentinels: ErrNotFound when nothing matches, ErrStoreUnavailable
// when the store cannot be reached, ErrQuery when the store rejects the query
// or returns inconsistent rows.
func (s *Service) GetWorkout(ctx context.Context, key WorkoutKey) (Workout, error) {
	if s.db == nil {
		return Workout{}, fmt.Errorf("%w: no database connection", ErrStoreUnavailable)
	}

	rows, err := s.db.Query(ctx, workoutJoinQuery, key.Date, key.URLSlug)
	if err != nil {
		return Workout{}, classifyStoreError(err)
	}
	defer rows.Close()

	var joined []JoinedRow
	for rows.Next() {
		var r JoinedRow
		if err := rows.Scan(
			&r.WorkoutID, &r.WorkoutDate, &r.URLSlug, &r.QICName, &r.QICF3Name,
			&r.PaxID, &r.PaxName, &r.PaxF3Name,
			&r.AOID, &r.AOName, &r.AODescription,
		); err != nil {
			return Workout{}, fmt.Errorf("%w: scanning workout row: %v", ErrQuery, err)
		}
		joined = append(joined, r)
	}
	if err := rows.Err(); err != nil {
		return Workout{}, classifyStoreError(err)
	}

	return AssembleWorkout(joined)
}

// HealthCheck verifies the store answers a trivial query.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("%w: no database connection", ErrStoreUnavailable)
	}

	var probe int
	if err := s.db.QueryRow(ctx, "SELECT 1").Scan(&probe); err != nil {
		return classifyStoreError(err)
	}
	if probe != 1 {
		return fmt.Errorf("%w: unexpected health probe result %d", ErrQuery, probe)
	}
	return nil
}

// classifyStoreError separates "the server rejected the query" from "the
// store cannot be reached". SQLSTATE class 08 covers connection exceptions;
// anything that is not a server-reported error (dial failure, timeout,
// closed pool) also means the store is unreachable.
func classifyStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "08") {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
