package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"weatherdash/internal/providers"
)

type OpenWeatherServiceTestSuite struct {
	suite.Suite
	apiServer *httptest.Server
	service   *providers.OpenWeatherService
	fixedTime time.Time
}

func (s *OpenWeatherServiceTestSuite) SetupTest() {
	s.apiServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		switch city {
		case "ValidCity":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"name": "Valid City",
				"sys":  map[string]interface{}{"country": "GB"},
				"coord": map[string]interface{}{
					"lon": -0.13,
					"lat": 51.51,
				},
				"main": map[string]interface{}{
					"temp":       12.3,
					"feels_like": 11.1,
					"humidity":   81,
					"pressure":   1012,
				},
				"wind": map[string]interface{}{"speed": 4.6},
				"weather": []map[string]interface{}{
					{"main": "Clouds", "description": "broken clouds"},
				},
			})
		case "SparseCity":
			// provider omitted country, weather and coordinates
			json.NewEncoder(w).Encode(map[string]interface{}{
				"main": map[string]interface{}{
					"temp": 5.0,
				},
			})
		case "UnknownCity":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"cod":     "404",
				"message": "city not found",
			})
		case "MalformedJSON":
			w.Write([]byte("{malformed json"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	s.fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.service = providers.NewOpenWeatherService("test_api_key")
	s.service.SetClock(func() time.Time { return s.fixedTime })

	httpClient := s.service.GetHTTPClient()
	httpClient.Transport = &mockTransport{apiURL: s.apiServer.URL}
}

func (s *OpenWeatherServiceTestSuite) TearDownTest() {
	s.apiServer.Close()
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_Success() {
	record, err := s.service.FetchCurrent(context.Background(), "ValidCity")

	s.NoError(err)
	s.Equal("Valid City", record.City)
	s.Equal("GB", record.Country)
	s.Equal(-0.13, record.Coordinates.Lon)
	s.Equal(51.51, record.Coordinates.Lat)
	s.Equal(12.3, record.Temp)
	s.Equal(11.1, record.FeelsLike)
	s.Equal(4.6, record.WindSpeed)
	s.Equal(81, record.Humidity)
	s.Equal(1012, record.Pressure)
	s.Equal("Clouds", record.Condition)
	s.Equal("broken clouds", record.Description)
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_StampsCaptureTime() {
	record, err := s.service.FetchCurrent(context.Background(), "ValidCity")

	s.NoError(err)
	s.Equal(s.fixedTime, record.FetchedAt)
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_DefaultsMissingFields() {
	record, err := s.service.FetchCurrent(context.Background(), "SparseCity")

	s.NoError(err)
	s.Equal("SparseCity", record.City)
	s.Equal("NA", record.Country)
	s.Equal(0.0, record.Coordinates.Lon)
	s.Equal(0.0, record.Coordinates.Lat)
	s.Equal("Unknown", record.Condition)
	s.Equal("Unknown", record.Description)
	s.Equal(0.0, record.WindSpeed)
	s.Equal(s.fixedTime, record.FetchedAt)
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_ProviderRejection() {
	_, err := s.service.FetchCurrent(context.Background(), "UnknownCity")

	s.Error(err)
	var providerErr *providers.ProviderError
	s.ErrorAs(err, &providerErr)
	s.Equal(http.StatusNotFound, providerErr.StatusCode)
	s.Contains(providerErr.Message, "city not found")
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_ServerError() {
	_, err := s.service.FetchCurrent(context.Background(), "ServerError")

	s.Error(err)
	var providerErr *providers.ProviderError
	s.ErrorAs(err, &providerErr)
	s.Equal(http.StatusInternalServerError, providerErr.StatusCode)
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_MalformedJSON() {
	_, err := s.service.FetchCurrent(context.Background(), "MalformedJSON")

	s.Error(err)
	s.Contains(err.Error(), "malformed JSON")
}

func (s *OpenWeatherServiceTestSuite) TestFetchCurrent_MissingAPIKey() {
	service := providers.NewOpenWeatherService("")

	_, err := service.FetchCurrent(context.Background(), "ValidCity")

	s.ErrorIs(err, providers.ErrMissingAPIKey)
}

type mockTransport struct {
	apiURL string
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host == "api.openweathermap.org" {
		newURL := *req.URL
		newURL.Scheme = "http"
		newURL.Host = m.apiURL[7:] // Remove "http://"
		req.URL = &newURL
	}
	return http.DefaultTransport.RoundTrip(req)
}

func TestOpenWeatherServiceSuite(t *testing.T) {
	suite.Run(t, new(OpenWeatherServiceTestSuite))
}
