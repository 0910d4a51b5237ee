package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mcoot/bingo-challenge-go/internal/api/apierr"
	"github.com/mcoot/bingo-challenge-go/internal/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/model"
)

type contextKey string

const deviceContextKey contextKey = "device"

// RequireDevice rejects requests without an x-device-id header and puts
// the device id on the request context for handlers
func RequireDevice() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			device := strings.TrimSpace(r.Header.Get(middleware.DeviceIDHeader))
			if device == "" {
				apierr.WriteError(w, apierr.NewMissingDeviceIDError())
				return
			}

			ctx := context.WithValue(r.Context(), deviceContextKey, model.DeviceID(device))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetDevice returns the device id from the request context
func GetDevice(ctx context.Context) model.DeviceID {
	device, _ := ctx.Value(deviceContextKey).(model.DeviceID)
	return device
}

// MustGetDevice returns the device id or panics
func MustGetDevice(ctx context.Context) model.DeviceID {
	device := GetDevice(ctx)
	if device == "" {
		panic("no device in context - device middleware not applied?")
	}
	return device
}

// ClientIP extracts the caller's IP for rate limiting. Proxy headers are
// preferred since the service normally sits behind one.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First entry is the original client
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
