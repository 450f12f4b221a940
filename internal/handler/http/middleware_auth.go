package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/service"
	"github.com/MKhiriev/go-marketplace/internal/utils"
)

const bearerScheme = "Bearer"

// auth is an HTTP middleware that resolves the bearer token to an account.
//
// It extracts the token from the "Authorization" header, looks it up via
// [service.AccountService.Authenticate] and, on success, stores the account in
// the request context under [utils.AccountCtxKey] and adds its id to the
// request logger.
//
// Missing, malformed and unknown tokens are all answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthenticated, ErrEmptyAuthorizationHeader), "*Handler.auth")
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthenticated, err), "*Handler.auth")
			return
		}

		ctx := r.Context()
		account, err := h.services.AccountService.Authenticate(ctx, token)
		if err != nil {
			writeError(w, r, err, "*Handler.auth")
			return
		}

		l := logger.FromRequest(r).With().Str("account_id", account.ID).Logger()
		ctx = l.WithContext(utils.WithAccount(ctx, account))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from a header value of the form
//
//	Authorization: Bearer <token>
//
// The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimLeft(authHeader, " "), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
