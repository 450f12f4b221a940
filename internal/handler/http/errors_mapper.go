package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/service"
	"github.com/MKhiriev/go-marketplace/internal/utils"
)

var errorStatusMap = map[service.ErrorKind]int{
	service.KindValidation:         http.StatusBadRequest,
	service.KindConflict:           http.StatusBadRequest,
	service.KindInvalidCredentials: http.StatusUnauthorized,
	service.KindUnauthenticated:    http.StatusUnauthorized,
	service.KindForbidden:          http.StatusForbidden,
	service.KindNotFound:           http.StatusNotFound,
	service.KindAssetStore:         http.StatusBadGateway,
	service.KindPersistence:        http.StatusInternalServerError,
	service.KindInternal:           http.StatusInternalServerError,
}

func statusFromError(err error) int {
	if status, ok := errorStatusMap[service.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// messageFromError returns the message sent to the client. Client errors
// carry the full chain; server errors only name their kind.
func messageFromError(err error, status int) string {
	if status < http.StatusInternalServerError {
		return err.Error()
	}

	switch service.KindOf(err) {
	case service.KindAssetStore:
		return service.ErrAssetStore.Error()
	case service.KindPersistence:
		return service.ErrPersistence.Error()
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

// writeError logs err and answers with the status of its kind.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	utils.WriteMessage(w, messageFromError(err, status), status)
}

// writeBadRequest answers 400 for transport-level parsing failures that never
// reached a service.
func writeBadRequest(w http.ResponseWriter, r *http.Request, err error, fn string) {
	logger.FromRequest(r).Debug().Err(err).Str("func", fn).Msg("bad request")

	if errors.Is(err, errBodyTooLarge) {
		utils.WriteMessage(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	utils.WriteMessage(w, err.Error(), http.StatusBadRequest)
}
