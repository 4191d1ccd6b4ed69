package planner

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/Corner-venturo/Corner-sub010/internal/attraction"
	"github.com/Corner-venturo/Corner-sub010/internal/gemini"
	"github.com/Corner-venturo/Corner-sub010/internal/geo"
	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"
	"github.com/Corner-venturo/Corner-sub010/internal/schedule"
	"github.com/Corner-venturo/Corner-sub010/internal/stream"
)

// AttractionSource loads candidate pools.
type AttractionSource interface {
	ListActive(ctx context.Context, cityIDs []string) ([]attraction.Attraction, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]attraction.Attraction, error)
}

// TourStore persists generated plans onto tours.
type TourStore interface {
	SaveItinerary(ctx context.Context, id string, days []itinerary.Day) error
}

// AIGenerator is the model-backed fallback.
type AIGenerator interface {
	Generate(ctx context.Context, req gemini.Request) gemini.Result
}

// Broadcaster notifies tour watchers.
type Broadcaster interface {
	BroadcastEvent(tourID, eventType string, data any) error
}

const (
	SourceRules = "rules"
	SourceAI    = "ai"
)

type GenerateRequest struct {
	itinerary.Request
	TourID       string `json:"tourId,omitempty"`
	FallbackToAI bool   `json:"fallbackToAi,omitempty"`
	// Destination and CountryName are only used when the model fallback runs.
	Destination string `json:"destination,omitempty"`
	CountryName string `json:"countryName,omitempty"`
}

type GenerateResponse struct {
	itinerary.Result
	Source  string `json:"source"`
	AIError string `json:"aiError,omitempty"`
}

type AIRequest struct {
	gemini.Request
	TourID string `json:"tourId,omitempty"`
}

type Service struct {
	attractions AttractionSource
	tours       TourStore
	ai          AIGenerator
	hub         Broadcaster
	cfg         schedule.Config
}

// NewService wires the planner. ai and hub may be nil.
func NewService(attractions AttractionSource, tours TourStore, ai AIGenerator, hub Broadcaster, cfg schedule.Config) *Service {
	return &Service{attractions: attractions, tours: tours, ai: ai, hub: hub, cfg: cfg}
}

// Generate runs the rule-based generator over the cities of the request. With FallbackToAI set and
// nothing scheduled, the model is asked instead. The plan is saved on the tour when TourID is set.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	cityIDs := []string{req.CityID}
	for _, acc := range req.Accommodations {
		if !slices.Contains(cityIDs, acc.CityID) {
			cityIDs = append(cityIDs, acc.CityID)
		}
	}

	pool, err := s.attractions.ListActive(ctx, cityIDs)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("load attractions: %w", err)
	}

	resp := GenerateResponse{
		Result: itinerary.Generate(req.Request, pool, s.cfg),
		Source: SourceRules,
	}

	if req.FallbackToAI && resp.Stats.TotalAttractions == 0 && s.ai != nil {
		aiRes := s.ai.Generate(ctx, aiRequestFrom(req))
		if aiRes.Success {
			resp.DailyItinerary = aiRes.DailyItinerary
			resp.Source = SourceAI
		} else {
			resp.AIError = aiRes.Error
			log.Printf("planner: ai fallback failed: %s", aiRes.Error)
		}
	}

	if req.TourID != "" {
		if err := s.save(ctx, req.TourID, resp.DailyItinerary, resp.Source); err != nil {
			return GenerateResponse{}, err
		}
	}
	return resp, nil
}

// GenerateWithAI calls the model directly. A failed generation is not an error; only persisting
// a successful plan can fail.
func (s *Service) GenerateWithAI(ctx context.Context, req AIRequest) (gemini.Result, error) {
	if s.ai == nil {
		return gemini.Result{DailyItinerary: []itinerary.Day{}, Error: "AI generator not configured"}, nil
	}

	res := s.ai.Generate(ctx, req.Request)
	if res.Success && req.TourID != "" {
		if err := s.save(ctx, req.TourID, res.DailyItinerary, SourceAI); err != nil {
			return gemini.Result{}, err
		}
	}
	return res, nil
}

// SlotPlan is a day window with its time left after meals.
type SlotPlan struct {
	schedule.DailyTimeSlot
	UsableMinutes int `json:"usableMinutes"`
}

// Slots previews the daily windows a request would be planned into.
func (s *Service) Slots(req itinerary.Request) ([]SlotPlan, error) {
	departure, err := schedule.ParseDate(req.DepartureDate)
	if err != nil {
		return nil, err
	}
	slots := schedule.DailyTimeSlots(req.NumDays, departure, req.OutboundFlight, req.ReturnFlight, s.cfg)
	out := make([]SlotPlan, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotPlan{DailyTimeSlot: slot, UsableMinutes: schedule.UsableTime(slot, s.cfg)})
	}
	return out, nil
}

// Nearby narrows the database radius search to exact great-circle distances, nearest first.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]attraction.WithDistance, error) {
	list, err := s.attractions.Nearby(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("nearby attractions: %w", err)
	}
	return geo.FilterNearby(lat, lng, list, radiusKm), nil
}

func (s *Service) save(ctx context.Context, tourID string, days []itinerary.Day, source string) error {
	if err := s.tours.SaveItinerary(ctx, tourID, days); err != nil {
		return fmt.Errorf("save itinerary for tour %s: %w", tourID, err)
	}
	if s.hub != nil {
		event := map[string]any{
			"source":         source,
			"dailyItinerary": days,
			"generatedAt":    time.Now().UTC(),
		}
		if err := s.hub.BroadcastEvent(tourID, stream.EventItineraryGenerated, event); err != nil {
			log.Printf("planner: broadcast for tour %s: %v", tourID, err)
		}
	}
	return nil
}

func aiRequestFrom(req GenerateRequest) gemini.Request {
	destination := req.Destination
	if destination == "" {
		destination = req.CityID
	}
	return gemini.Request{
		Destination:    destination,
		CountryName:    req.CountryName,
		NumDays:        req.NumDays,
		DepartureDate:  req.DepartureDate,
		ArrivalTime:    req.OutboundFlight.ArrivalTime,
		DepartureTime:  req.ReturnFlight.DepartureTime,
		Style:          req.Style,
		Accommodations: req.Accommodations,
	}
}
