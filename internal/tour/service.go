package tour

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Corner-venturo/Corner-sub010/internal/db"
	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"
	"github.com/Corner-venturo/Corner-sub010/internal/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateTour(ctx context.Context, input Tour) (Tour, error) {
	departure, err := datePtr(input.DepartureDate)
	if err != nil {
		return Tour{}, err
	}
	input.ID = uuid.NewString()
	if input.DailyItinerary == nil {
		input.DailyItinerary = []itinerary.Day{}
	}
	days, err := json.Marshal(input.DailyItinerary)
	if err != nil {
		return Tour{}, fmt.Errorf("encode itinerary: %w", err)
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO tours (id, code, name, city_id, departure_date, num_days, daily_itinerary)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`, input.ID, input.Code, input.Name, input.CityID, departure, input.NumDays, days)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Tour{}, fmt.Errorf("insert tour: %w", err)
	}
	return input, nil
}

func (s *Service) GetTour(ctx context.Context, id string) (Tour, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, code, name, city_id, departure_date, num_days, daily_itinerary, created_at, updated_at
		FROM tours WHERE id=$1
	`, id)

	var (
		t         Tour
		departure pgtype.Date
		days      []byte
	)
	if err := row.Scan(&t.ID, &t.Code, &t.Name, &t.CityID, &departure, &t.NumDays, &days, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Tour{}, db.NotFound(err)
	}
	t.DepartureDate = formatDate(departure)
	t.DailyItinerary = []itinerary.Day{}
	if len(days) > 0 {
		if err := json.Unmarshal(days, &t.DailyItinerary); err != nil {
			return Tour{}, fmt.Errorf("decode itinerary of tour %s: %w", id, err)
		}
	}
	return t, nil
}

// UpdateTour applies the non-zero header fields of patch. The itinerary is changed only through
// SaveItinerary.
func (s *Service) UpdateTour(ctx context.Context, id string, patch Tour) (Tour, error) {
	t, err := s.GetTour(ctx, id)
	if err != nil {
		return Tour{}, err
	}
	if patch.Code != "" {
		t.Code = patch.Code
	}
	if patch.Name != "" {
		t.Name = patch.Name
	}
	if patch.CityID != "" {
		t.CityID = patch.CityID
	}
	if patch.DepartureDate != "" {
		t.DepartureDate = patch.DepartureDate
	}
	if patch.NumDays > 0 {
		t.NumDays = patch.NumDays
	}
	departure, err := datePtr(t.DepartureDate)
	if err != nil {
		return Tour{}, err
	}

	row := s.db.QueryRow(ctx, `
		UPDATE tours
		SET code=$2, name=$3, city_id=$4, departure_date=$5, num_days=$6, updated_at=now()
		WHERE id=$1
		RETURNING updated_at
	`, t.ID, t.Code, t.Name, t.CityID, departure, t.NumDays)
	if err := row.Scan(&t.UpdatedAt); err != nil {
		return Tour{}, db.NotFound(err)
	}
	return t, nil
}

func (s *Service) DeleteTour(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM tours WHERE id=$1`, id)
	return err
}

// SaveItinerary replaces the tour's day plan.
func (s *Service) SaveItinerary(ctx context.Context, id string, days []itinerary.Day) error {
	if days == nil {
		days = []itinerary.Day{}
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE tours SET daily_itinerary=$2, updated_at=now()
		WHERE id=$1
	`, id, payload)
	if err != nil {
		return fmt.Errorf("save itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ErrInvalidDate is returned for a departure date that is not "2006-01-02".
var ErrInvalidDate = errors.New("departure_date must be YYYY-MM-DD")

func datePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := schedule.ParseDate(s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// formatDate renders a date column, empty when NULL.
func formatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return schedule.FormatDate(d.Time)
}
