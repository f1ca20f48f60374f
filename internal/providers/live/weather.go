package live

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/log"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org"

var (
	cityPattern  = regexp.MustCompile(`(?i)(?:in|at|for)\s+([A-Za-z\s]+)`)
	weatherNoise = regexp.MustCompile(`(?i)(weather|forecast|temperature)`)
)

// ExtractCity pulls a city name out of phrases like "weather in Berlin".
// Returns "" when the message names no city.
func ExtractCity(message string) string {
	m := cityPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	city := strings.TrimSpace(m[1])
	city = strings.TrimSpace(weatherNoise.ReplaceAllString(city, ""))
	return city
}

// Weather fetches current conditions and a short forecast from
// OpenWeather. The forecast is best-effort: when the onecall lookup
// fails, the report carries current conditions only.
type Weather struct {
	client
	apiKey      string
	baseURL     string
	defaultCity string
}

func NewWeather(apiKey, defaultCity string) *Weather {
	return &Weather{client: newClient(), apiKey: apiKey, baseURL: defaultWeatherBaseURL, defaultCity: defaultCity}
}

func NewWeatherWithBaseURL(apiKey, defaultCity, baseURL string) *Weather {
	return &Weather{client: newClient(), apiKey: apiKey, baseURL: baseURL, defaultCity: defaultCity}
}

func (w *Weather) FetchWeather(ctx context.Context, city string, forecastDays int) (core.WeatherReport, error) {
	if strings.TrimSpace(city) == "" {
		city = w.defaultCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", w.apiKey)
	params.Set("units", "metric")

	var current struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Coord struct {
			Lat *float64 `json:"lat"`
			Lon *float64 `json:"lon"`
		} `json:"coord"`
	}
	if err := w.getJSON(ctx, w.baseURL+"/data/2.5/weather", params, &current); err != nil {
		return core.WeatherReport{}, fmt.Errorf("openweather: %w", err)
	}

	report := core.WeatherReport{
		City:  city,
		TempC: current.Main.Temp,
	}
	if len(current.Weather) > 0 {
		report.Description = current.Weather[0].Description
	}

	if forecastDays > 0 && current.Coord.Lat != nil && current.Coord.Lon != nil {
		forecast, err := w.fetchForecast(ctx, *current.Coord.Lat, *current.Coord.Lon, forecastDays)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("city", city).Msg("weather forecast unavailable")
		} else {
			report.Forecast = forecast
		}
	}

	return report, nil
}

func (w *Weather) fetchForecast(ctx context.Context, lat, lon float64, days int) ([]core.ForecastDay, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("exclude", "minutely,hourly,alerts")
	params.Set("appid", w.apiKey)
	params.Set("units", "metric")

	var result struct {
		Daily []struct {
			Dt      int64 `json:"dt"`
			Weather []struct {
				Main string `json:"main"`
			} `json:"weather"`
			Temp struct {
				Min float64 `json:"min"`
				Max float64 `json:"max"`
			} `json:"temp"`
		} `json:"daily"`
	}
	if err := w.getJSON(ctx, w.baseURL+"/data/2.5/onecall", params, &result); err != nil {
		return nil, err
	}

	forecast := make([]core.ForecastDay, 0, days)
	for i, day := range result.Daily {
		if i >= days {
			break
		}
		fd := core.ForecastDay{
			Date: time.Unix(day.Dt, 0).UTC().Format("2006-01-02"),
			MinC: day.Temp.Min,
			MaxC: day.Temp.Max,
		}
		if len(day.Weather) > 0 {
			fd.Summary = day.Weather[0].Main
		}
		forecast = append(forecast, fd)
	}
	return forecast, nil
}
