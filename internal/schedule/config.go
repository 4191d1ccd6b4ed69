package schedule

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable scheduling parameters for one generation run.
// Durations are in minutes, clock values are "HH:MM".
type Config struct {
	PostArrivalBuffer  int     `yaml:"post_arrival_buffer" json:"postArrivalBuffer" validate:"gte=0"`
	PreDepartureBuffer int     `yaml:"pre_departure_buffer" json:"preDepartureBuffer" validate:"gte=0"`
	DefaultDayStart    string  `yaml:"default_day_start" json:"defaultDayStart" validate:"required,datetime=15:04"`
	DefaultDayEnd      string  `yaml:"default_day_end" json:"defaultDayEnd" validate:"required,datetime=15:04"`
	LunchTime          string  `yaml:"lunch_time" json:"lunchTime" validate:"required,datetime=15:04"`
	DinnerTime         string  `yaml:"dinner_time" json:"dinnerTime" validate:"required,datetime=15:04"`
	MealDuration       int     `yaml:"meal_duration" json:"mealDuration" validate:"gte=0"`
	AvgSpeedKmh        float64 `yaml:"avg_speed_kmh" json:"avgSpeedKmh" validate:"gt=0"`
	MinTravelTime      int     `yaml:"min_travel_time" json:"minTravelTime" validate:"gte=0"`
	MaxDistanceKm      float64 `yaml:"max_distance_km" json:"maxDistanceKm" validate:"gte=0"`
}

// DefaultConfig returns the scheduling parameters used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		PostArrivalBuffer:  60,
		PreDepartureBuffer: 120,
		DefaultDayStart:    "09:00",
		DefaultDayEnd:      "21:00",
		LunchTime:          "12:00",
		DinnerTime:         "18:00",
		MealDuration:       60,
		AvgSpeedKmh:        30,
		MinTravelTime:      15,
		MaxDistanceKm:      50,
	}
}

var validate = validator.New()

// Validate checks field ranges and that the day window is not inverted.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if TimeToMinutes(c.DefaultDayEnd) <= TimeToMinutes(c.DefaultDayStart) {
		return fmt.Errorf("default_day_end %s must be after default_day_start %s", c.DefaultDayEnd, c.DefaultDayStart)
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scheduling config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scheduling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid scheduling config: %w", err)
	}
	return cfg, nil
}
