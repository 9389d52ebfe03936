package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weatherdash/internal/db/weatherrecord"
)

// Clock supplies the fetchedAt timestamp so tests can use a fixed time.
type Clock func() time.Time

// ErrMissingAPIKey is a configuration fault: the service cannot reach the
// provider at all without a key.
var ErrMissingAPIKey = errors.New("openweather api key is not configured")

// ProviderError carries a failed or rejected provider response.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("openweather request failed: %s (status %d)", e.Message, e.StatusCode)
}

type WeatherProvider interface {
	FetchCurrent(ctx context.Context, city string) (*weatherrecord.WeatherRecord, error)
	GetHTTPClient() *http.Client
}

type OpenWeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	clock   Clock
}

// TODO: move base url to config
func NewOpenWeatherService(apiKey string) *OpenWeatherService {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherService{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		circuit: cb,
		clock:   time.Now,
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Message string `json:"message"`
}

// FetchCurrent issues a single request to the provider and maps the response
// into the canonical record shape. There are no retries; any transport or
// non-2xx failure propagates to the caller.
func (s *OpenWeatherService) FetchCurrent(ctx context.Context, city string) (*weatherrecord.WeatherRecord, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	result, err := s.circuit.Execute(func() (interface{}, error) {
		resp, execErr := s.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		var payload openWeatherResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			message := payload.Message
			if message == "" {
				message = http.StatusText(resp.StatusCode)
			}
			return nil, &ProviderError{StatusCode: resp.StatusCode, Message: message}
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("openweather returned malformed JSON: %w", decodeErr)
		}

		return &payload, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &ProviderError{StatusCode: http.StatusServiceUnavailable, Message: err.Error()}
		}
		return nil, err
	}

	payload, ok := result.(*openWeatherResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}

	return s.normalize(city, payload), nil
}

// normalize fills the canonical shape, defaulting fields the provider omits.
func (s *OpenWeatherService) normalize(requestedCity string, payload *openWeatherResponse) *weatherrecord.WeatherRecord {
	record := &weatherrecord.WeatherRecord{
		City:    payload.Name,
		Country: payload.Sys.Country,
		Coordinates: weatherrecord.Coordinates{
			Lon: payload.Coord.Lon,
			Lat: payload.Coord.Lat,
		},
		Temp:        payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		WindSpeed:   payload.Wind.Speed,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		Condition:   "Unknown",
		Description: "Unknown",
		// capture time, not the provider's observation time
		FetchedAt: s.clock().UTC(),
	}

	if record.City == "" {
		record.City = requestedCity
	}
	if record.Country == "" {
		record.Country = "NA"
	}
	if len(payload.Weather) > 0 {
		if payload.Weather[0].Main != "" {
			record.Condition = payload.Weather[0].Main
		}
		if payload.Weather[0].Description != "" {
			record.Description = payload.Weather[0].Description
		}
	}

	return record
}

func (s *OpenWeatherService) GetHTTPClient() *http.Client {
	return s.client
}

// SetClock replaces the fetchedAt time source. Intended for tests.
func (s *OpenWeatherService) SetClock(clock Clock) {
	s.clock = clock
}
