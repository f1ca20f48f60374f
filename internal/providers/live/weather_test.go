package live

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCity(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "weather in city",
			message:  "what's the weather in Berlin",
			expected: "Berlin",
		},
		{
			name:     "forecast for city",
			message:  "forecast for Chennai please",
			expected: "Chennai please",
		},
		{
			name:     "city followed by weather word",
			message:  "temperature in Madurai forecast",
			expected: "Madurai",
		},
		{
			name:     "no city",
			message:  "how hot is it",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCity(tt.message)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestWeather_FetchWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/2.5/weather":
			require.Equal(t, "Berlin", r.URL.Query().Get("q"))
			fmt.Fprint(w, `{"weather":[{"description":"light rain"}],"main":{"temp":14.2},"coord":{"lat":52.5,"lon":13.4}}`)
		case "/data/2.5/onecall":
			fmt.Fprint(w, `{"daily":[
				{"dt":1700000000,"weather":[{"main":"Rain"}],"temp":{"min":9.1,"max":15.3}},
				{"dt":1700086400,"weather":[{"main":"Clouds"}],"temp":{"min":8.0,"max":13.9}},
				{"dt":1700172800,"weather":[{"main":"Clear"}],"temp":{"min":7.5,"max":12.2}},
				{"dt":1700259200,"weather":[{"main":"Clear"}],"temp":{"min":7.0,"max":11.8}}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	provider := NewWeatherWithBaseURL("key", "Coimbatore", srv.URL)

	report, err := provider.FetchWeather(context.Background(), "Berlin", 3)
	require.NoError(t, err)
	require.Equal(t, "Berlin", report.City)
	require.Equal(t, "light rain", report.Description)
	require.InDelta(t, 14.2, report.TempC, 0.001)
	require.Len(t, report.Forecast, 3)
	require.Equal(t, "Rain", report.Forecast[0].Summary)
}

func TestWeather_FetchWeather_DefaultCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Coimbatore", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"weather":[{"description":"clear sky"}],"main":{"temp":31.0},"coord":{}}`)
	}))
	defer srv.Close()

	provider := NewWeatherWithBaseURL("key", "Coimbatore", srv.URL)

	report, err := provider.FetchWeather(context.Background(), "", 3)
	require.NoError(t, err)
	require.Equal(t, "Coimbatore", report.City)
	// No coordinates, so no forecast, but no error either.
	require.Empty(t, report.Forecast)
}
