package service

import (
	"context"

	"weatherdash/internal/db/weatherrecord"
	"weatherdash/internal/providers"
	"weatherdash/internal/validation"
)

// WeatherService orchestrates the provider, the validation layer and the
// record store. Handlers hold no state of their own; each call here is one
// independent round trip.
type WeatherService interface {
	ListRecords(ctx context.Context, city string, limit int) ([]weatherrecord.WeatherRecord, error)
	GetRecord(ctx context.Context, id string) (*weatherrecord.WeatherRecord, error)
	CreateManual(ctx context.Context, record *weatherrecord.WeatherRecord) (*weatherrecord.WeatherRecord, error)
	FetchAndCreate(ctx context.Context, city string) (*weatherrecord.WeatherRecord, error)
	ReplaceRecord(ctx context.Context, id string, record *weatherrecord.WeatherRecord) (*weatherrecord.WeatherRecord, error)
	RefreshRecord(ctx context.Context, id string) (*weatherrecord.WeatherRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

type weatherService struct {
	provider    providers.WeatherProvider
	repo        weatherrecord.Repository
	defaultCity string
}

func NewWeatherService(provider providers.WeatherProvider, repo weatherrecord.Repository, defaultCity string) WeatherService {
	return &weatherService{
		provider:    provider,
		repo:        repo,
		defaultCity: defaultCity,
	}
}

func (s *weatherService) ListRecords(ctx context.Context, city string, limit int) ([]weatherrecord.WeatherRecord, error) {
	return s.repo.List(ctx, city, limit)
}

func (s *weatherService) GetRecord(ctx context.Context, id string) (*weatherrecord.WeatherRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateManual persists a caller-supplied record without touching the
// provider.
func (s *weatherService) CreateManual(ctx context.Context, record *weatherrecord.WeatherRecord) (*weatherrecord.WeatherRecord, error) {
	if err := validation.ValidateRecord(record); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, record)
}

// FetchAndCreate runs provider fetch -> validate -> create. An empty city
// falls back to the configured default.
func (s *weatherService) FetchAndCreate(ctx context.Context, city string) (*weatherrecord.WeatherRecord, error) {
	if city == "" {
		city = s.defaultCity
	}
	if city == "" {
		return nil, validation.MissingField("city", "is required and no default city is configured")
	}

	record, err := s.provider.FetchCurrent(ctx, city)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRecord(record); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, record)
}

func (s *weatherService) ReplaceRecord(ctx context.Context, id string, record *weatherrecord.WeatherRecord) (*weatherrecord.WeatherRecord, error) {
	if err := validation.ValidateRecord(record); err != nil {
		return nil, err
	}
	return s.repo.ReplaceByID(ctx, id, record)
}

// RefreshRecord re-fetches the record's city and replaces the document under
// the same id, so a refresh never changes a record's identity.
func (s *weatherService) RefreshRecord(ctx context.Context, id string) (*weatherrecord.WeatherRecord, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fresh, err := s.provider.FetchCurrent(ctx, existing.City)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRecord(fresh); err != nil {
		return nil, err
	}
	return s.repo.ReplaceByID(ctx, id, fresh)
}

func (s *weatherService) DeleteRecord(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}
