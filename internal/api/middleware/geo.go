package middleware

import (
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/api/apierr"
)

// GeoConfig controls the region gate on write endpoints
type GeoConfig struct {
	// AllowAll disables the gate entirely (local development)
	AllowAll bool
	// Countries are the permitted CF-IPCountry values
	Countries []string
	// Regions are the permitted CF-Region-Code values; empty means any
	// region within an allowed country
	Regions []string
}

// DefaultGeoConfig limits the service to its home region
func DefaultGeoConfig() GeoConfig {
	return GeoConfig{
		Countries: []string{"US"},
		Regions:   []string{"IN"},
	}
}

// RequestGeo describes where a request came from, as reported by the
// fronting proxy
type RequestGeo struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	Allowed bool   `json:"allowed"`
}

// Evaluate applies the gate to proxy-reported geo headers. Requests with
// no geo headers at all are allowed; they did not come through the proxy.
func (c GeoConfig) Evaluate(r *http.Request) RequestGeo {
	geo := RequestGeo{
		Country: r.Header.Get("CF-IPCountry"),
		Region:  r.Header.Get("CF-Region-Code"),
	}

	if c.AllowAll || geo.Country == "" {
		geo.Allowed = true
		return geo
	}
	if !contains(c.Countries, geo.Country) {
		return geo
	}
	if len(c.Regions) > 0 && !contains(c.Regions, geo.Region) {
		return geo
	}

	geo.Allowed = true
	return geo
}

// Geo creates geo gate middleware
func Geo(cfg GeoConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Evaluate(r).Allowed {
				apierr.WriteError(w, apierr.NewGeoBlockedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
