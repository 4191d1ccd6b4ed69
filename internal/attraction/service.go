package attraction

import (
	"context"
	"fmt"

	"github.com/Corner-venturo/Corner-sub010/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectColumns = `
	SELECT id, name, COALESCE(name_en,''), COALESCE(description,''), country_id, city_id,
	       COALESCE(category,''), COALESCE(tags,'{}'), COALESCE(duration_minutes,0),
	       latitude, longitude, COALESCE(images,'{}'), COALESCE(thumbnail,''), COALESCE(notes,''),
	       is_active, display_order, created_at, updated_at
	FROM attractions`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateAttraction(ctx context.Context, input Attraction) (Attraction, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO attractions (id, name, name_en, description, country_id, city_id, category, tags,
		                         duration_minutes, latitude, longitude, images, thumbnail, notes,
		                         is_active, display_order)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING created_at, updated_at
	`, input.ID, input.Name, input.NameEn, input.Description, input.CountryID, input.CityID, input.Category, input.Tags,
		nullableInt(input.DurationMinutes), input.Latitude, input.Longitude, input.Images, input.Thumbnail, input.Notes,
		input.IsActive, input.DisplayOrder)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Attraction{}, fmt.Errorf("insert attraction: %w", err)
	}
	return input, nil
}

func (s *Service) GetAttraction(ctx context.Context, id string) (Attraction, error) {
	row := s.db.QueryRow(ctx, selectColumns+` WHERE id=$1`, id)
	a, err := scanAttraction(row)
	if err != nil {
		return Attraction{}, db.NotFound(err)
	}
	return a, nil
}

// UpdateAttraction applies the non-zero fields of patch. IsActive is taken from patch only when
// setActive is true so a patch can deactivate an attraction.
func (s *Service) UpdateAttraction(ctx context.Context, id string, patch Attraction, setActive bool) (Attraction, error) {
	a, err := s.GetAttraction(ctx, id)
	if err != nil {
		return Attraction{}, err
	}
	if patch.Name != "" {
		a.Name = patch.Name
	}
	if patch.NameEn != "" {
		a.NameEn = patch.NameEn
	}
	if patch.Description != "" {
		a.Description = patch.Description
	}
	if patch.CityID != "" {
		a.CityID = patch.CityID
	}
	if patch.Category != "" {
		a.Category = patch.Category
	}
	if patch.Tags != nil {
		a.Tags = patch.Tags
	}
	if patch.DurationMinutes > 0 {
		a.DurationMinutes = patch.DurationMinutes
	}
	if patch.Latitude != nil && patch.Longitude != nil {
		a.Latitude = patch.Latitude
		a.Longitude = patch.Longitude
	}
	if patch.Images != nil {
		a.Images = patch.Images
	}
	if patch.Thumbnail != "" {
		a.Thumbnail = patch.Thumbnail
	}
	if patch.Notes != "" {
		a.Notes = patch.Notes
	}
	if patch.DisplayOrder != 0 {
		a.DisplayOrder = patch.DisplayOrder
	}
	if setActive {
		a.IsActive = patch.IsActive
	}

	err = s.db.QueryRow(ctx, `
		UPDATE attractions
		SET name=$2, name_en=$3, description=$4, city_id=$5, category=$6, tags=$7,
		    duration_minutes=$8, latitude=$9, longitude=$10, images=$11, thumbnail=$12,
		    notes=$13, is_active=$14, display_order=$15, updated_at=now()
		WHERE id=$1
		RETURNING updated_at
	`, a.ID, a.Name, a.NameEn, a.Description, a.CityID, a.Category, a.Tags,
		nullableInt(a.DurationMinutes), a.Latitude, a.Longitude, a.Images, a.Thumbnail,
		a.Notes, a.IsActive, a.DisplayOrder).Scan(&a.UpdatedAt)
	if err != nil {
		return Attraction{}, fmt.Errorf("update attraction %s: %w", id, err)
	}
	return a, nil
}

func (s *Service) DeleteAttraction(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM attractions WHERE id=$1`, id)
	return err
}

// ListByCity returns a city's attractions in display order, active and inactive alike.
func (s *Service) ListByCity(ctx context.Context, cityID string) ([]Attraction, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		WHERE city_id=$1
		ORDER BY display_order, name
	`, cityID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListActive loads the candidate pool for itinerary generation.
func (s *Service) ListActive(ctx context.Context, cityIDs []string) ([]Attraction, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		WHERE city_id = ANY($1) AND is_active
		ORDER BY display_order, name
	`, cityIDs)
	if err != nil {
		return nil, fmt.Errorf("list active attractions: %w", err)
	}
	return collect(rows)
}

// Nearby returns active attractions within radiusKm of the point, nearest first.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]Attraction, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		WHERE is_active AND latitude IS NOT NULL AND longitude IS NOT NULL
		  AND ST_DWithin(ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		                 ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY ST_Distance(ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		                     ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography)
	`, lng, lat, radiusKm*1000)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Attraction, error) {
	defer rows.Close()

	var out []Attraction
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAttraction(row pgx.Row) (Attraction, error) {
	var a Attraction
	err := row.Scan(&a.ID, &a.Name, &a.NameEn, &a.Description, &a.CountryID, &a.CityID,
		&a.Category, &a.Tags, &a.DurationMinutes,
		&a.Latitude, &a.Longitude, &a.Images, &a.Thumbnail, &a.Notes,
		&a.IsActive, &a.DisplayOrder, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func nullableInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
