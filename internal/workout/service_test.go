package workout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

var joinColumns = []string{
	"id", "workout_date", "url_slug", "qic_name", "qic_f3_name",
	"pax_id", "pax_name", "f3_name",
	"aos_id", "aos_name", "description",
}

func beatdownDate() time.Time {
	return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func beatdownMockRows() *pgxmock.Rows {
	date := beatdownDate()
	return pgxmock.NewRows(joinColumns).
		AddRow(int64(7), date, "ripken-beatdown-2024-01-15", "Ripken", strPtr("Cal Ripken Jr."),
			int64Ptr(31), strPtr("Donatello"), strPtr("Donatello TMNT"),
			int64Ptr(11), strPtr("Warm-Up"), strPtr("Getting loose")).
		AddRow(int64(7), date, "ripken-beatdown-2024-01-15", "Ripken", strPtr("Cal Ripken Jr."),
			int64Ptr(31), strPtr("Donatello"), strPtr("Donatello TMNT"),
			int64Ptr(12), strPtr("The Thang"), strPtr("Main workout"))
}

func TestGetWorkoutAssemblesAggregate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT w.id, w.workout_date, w.url_slug, w.qic_name`).
		WithArgs(beatdownDate(), "ripken-beatdown-2024-01-15").
		WillReturnRows(beatdownMockRows())

	svc := NewService(mock)
	w, err := svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "ripken-beatdown-2024-01-15"})
	if err != nil {
		t.Fatalf("get workout: %v", err)
	}

	if w.QIC.Name != "Ripken" {
		t.Fatalf("unexpected QIC %+v", w.QIC)
	}
	if len(w.Pax) != 1 || w.Pax[0].Name != "Donatello" {
		t.Fatalf("unexpected PAX %+v", w.Pax)
	}
	if len(w.AOs) != 2 || w.AOs[0].Name != "Warm-Up" || w.AOs[1].Name != "The Thang" {
		t.Fatalf("unexpected AOs %+v", w.AOs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetWorkoutNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT w.id, w.workout_date`).
		WithArgs(beatdownDate(), "missing-workout").
		WillReturnRows(pgxmock.NewRows(joinColumns))

	svc := NewService(mock)
	_, err = svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "missing-workout"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetWorkoutQueryRejected(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT w.id, w.workout_date`).
		WithArgs(beatdownDate(), "broken").
		WillReturnError(&pgconn.PgError{Code: "42703", Message: "column does not exist"})

	svc := NewService(mock)
	_, err = svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "broken"})
	if !errors.Is(err, ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
	if errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("server-rejected query must not classify as unavailable: %v", err)
	}
}

func TestGetWorkoutConnectionException(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT w.id, w.workout_date`).
		WithArgs(beatdownDate(), "gone").
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	svc := NewService(mock)
	_, err = svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "gone"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable for SQLSTATE class 08, got %v", err)
	}
}

func TestGetWorkoutStoreUnreachable(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT w.id, w.workout_date`).
		WithArgs(beatdownDate(), "offline").
		WillReturnError(errStore)

	svc := NewService(mock)
	_, err = svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "offline"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestGetWorkoutScanError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT w.id, w.workout_date`).
		WithArgs(beatdownDate(), "short-row").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	svc := NewService(mock)
	_, err = svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "short-row"})
	if !errors.Is(err, ErrQuery) {
		t.Fatalf("expected ErrQuery for scan failure, got %v", err)
	}
}

func TestGetWorkoutConflictingRows(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	date := beatdownDate()
	rows := pgxmock.NewRows(joinColumns).
		AddRow(int64(7), date, "dup", "Ripken", (*string)(nil),
			(*int64)(nil), (*string)(nil), (*string)(nil),
			(*int64)(nil), (*string)(nil), (*string)(nil)).
		AddRow(int64(8), date, "dup", "Somebody Else", (*string)(nil),
			(*int64)(nil), (*string)(nil), (*string)(nil),
			(*int64)(nil), (*string)(nil), (*string)(nil))

	mock.ExpectQuery(`SELECT w.id, w.workout_date`).
		WithArgs(date, "dup").
		WillReturnRows(rows)

	svc := NewService(mock)
	_, err = svc.GetWorkout(context.Background(), WorkoutKey{Date: date, URLSlug: "dup"})
	if !errors.Is(err, ErrQuery) {
		t.Fatalf("expected ErrQuery for conflicting rows, got %v", err)
	}
}

func TestGetWorkoutNoConnection(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.GetWorkout(context.Background(), WorkoutKey{Date: beatdownDate(), URLSlug: "any"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable without a connection, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	svc := NewService(mock)
	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}
}

func TestHealthCheckStoreDown(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT 1`).WillReturnError(errStore)

	svc := NewService(mock)
	if err := svc.HealthCheck(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestHealthCheckNoConnection(t *testing.T) {
	svc := NewService(nil)
	if err := svc.HealthCheck(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable without a connection, got %v", err)
	}
}

var errStore = errors.New("store offline")
