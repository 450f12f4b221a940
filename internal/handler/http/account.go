package http

import (
	"net/http"

	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/MKhiriev/go-marketplace/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.parseForm(w, r); err != nil {
		writeBadRequest(w, r, err, "*Handler.signup")
		return
	}

	avatar, err := formFile(r, "avatar")
	if err != nil {
		writeBadRequest(w, r, err, "*Handler.signup")
		return
	}

	req := models.SignupRequest{
		Email:      r.FormValue("email"),
		Username:   r.FormValue("username"),
		Password:   r.FormValue("password"),
		Newsletter: formFlag(r.FormValue("newsletter")),
		Avatar:     avatar,
	}

	resp, err := h.services.AccountService.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "*Handler.signup")
		return
	}

	log.Debug().Str("account_id", resp.ID).Msg("account signed up")
	utils.WriteJSON(w, resp, http.StatusCreated)
}

// login accepts JSON and, for HTML form clients, urlencoded bodies.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if isMediaType(r, "application/json") {
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, r, err, "*Handler.login")
			return
		}
	} else {
		if err := h.parseForm(w, r); err != nil {
			writeBadRequest(w, r, err, "*Handler.login")
			return
		}
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	resp, err := h.services.AccountService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
