package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-marketplace/models"
)

// parseForm reads a multipart or urlencoded body, capped at the configured
// upload size.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if h.maxUploadSize > 0 {
		if r.ContentLength > h.maxUploadSize {
			return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, h.maxUploadSize)
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var err error
	if isMediaType(r, "multipart/form-data") {
		err = r.ParseMultipartForm(h.maxUploadSize)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %w", ErrMalformedBody, err)
}

// decodeJSON decodes a JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return nil
}

// formFile returns the content of the uploaded file field, or nil when the
// request carries no such file.
func formFile(r *http.Request, field string) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedBody, field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedBody, field, err)
	}
	return data, nil
}

func isMediaType(r *http.Request, want string) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == want
}

// formFlag interprets checkbox-like values. Anything unrecognised is false.
func formFlag(value string) bool {
	if strings.EqualFold(value, "on") {
		return true
	}
	flag, err := strconv.ParseBool(value)
	return err == nil && flag
}

// queryFloat parses an optional numeric query parameter.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedQuery, name)
	}
	return &value, nil
}

// queryPage parses the optional 1-indexed page parameter.
func queryPage(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: page", ErrMalformedQuery)
	}
	if page > models.MaxSearchPage {
		return 0, fmt.Errorf("%w: page exceeds %d", ErrMalformedQuery, models.MaxSearchPage)
	}
	return page, nil
}
