// Package weather looks up the current temperature of a city so a new card
// can be filled in without typing it.
package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("weather lookup is not configured")

// ErrCityNotFound is returned for a city the provider does not know.
var ErrCityNotFound = errors.New("city not found")

// Client queries the OpenWeatherMap current-weather endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
}

// New returns a client for baseURL. An empty apiKey yields a disabled client.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")).SetTimeout(timeout),
		apiKey: apiKey,
	}
}

// Enabled reports whether lookups can be made.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type currentWeather struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Temperature returns the current temperature in °C, rounded to whole
// degrees, e.g. "21°C".
func (c *Client) Temperature(ctx context.Context, city string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return "", ErrCityNotFound
	}

	var out currentWeather
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city,
			"appid": c.apiKey,
			"units": "metric",
		}).
		SetResult(&out).
		Get("/data/2.5/weather")
	if err != nil {
		return "", fmt.Errorf("weather request: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrCityNotFound, city)
	case resp.IsError():
		return "", fmt.Errorf("weather request failed: %s", resp.Status())
	}

	return strconv.Itoa(int(math.Round(out.Main.Temp))) + "°C", nil
}
