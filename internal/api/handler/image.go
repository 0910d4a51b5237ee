package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mcoot/bingo-challenge-go/internal/api/apierr"
)

// DefaultMaxImageBytes bounds card photo uploads
const DefaultMaxImageBytes = 6 << 20

// readImage pulls the image part out of a multipart upload, enforcing the
// size cap before any of the body is buffered
func readImage(w http.ResponseWriter, r *http.Request, maxBytes int64) (data []byte, contentType string, err error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, "", apierr.NewExpectedMultipartError()
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", apierr.NewImageTooLargeError()
		}
		return nil, "", apierr.NewExpectedMultipartError()
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", apierr.NewMissingImageError()
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", apierr.NewInternalError()
	}

	return data, header.Header.Get("Content-Type"), nil
}
