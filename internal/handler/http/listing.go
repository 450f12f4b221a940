// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/service"
	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/MKhiriev/go-marketplace/models"
	"github.com/go-chi/chi/v5"
)

const offerUpdatedMessage = "offer updated"

func (h *Handler) publishOffer(w http.ResponseWriter, r *http.Request) {
	owner, ok := utils.GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated, "*Handler.publishOffer")
		return
	}

	if err := h.parseForm(w, r); err != nil {
		writeBadRequest(w, r, err, "*Handler.publishOffer")
		return
	}

	picture, err := formFile(r, "picture")
	if err != nil {
		writeBadRequest(w, r, err, "*Handler.publishOffer")
		return
	}

	req := models.PublishRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Brand:       r.FormValue("brand"),
		Size:        r.FormValue("size"),
		Condition:   r.FormValue("condition"),
		Color:       r.FormValue("color"),
		City:        r.FormValue("city"),
		Picture:     picture,
	}

	listing, err := h.services.ListingService.Publish(r.Context(), owner, req)
	if err != nil {
		writeError(w, r, err, "*Handler.publishOffer")
		return
	}

	utils.WriteJSON(w, listing, http.StatusCreated)
}

// searchOffers serves GET /offers?title=&priceMin=&priceMax=&sort=&page=.
func (h *Handler) searchOffers(w http.ResponseWriter, r *http.Request) {
	priceMin, err := queryFloat(r, "priceMin")
	if err != nil {
		writeBadRequest(w, r, err, "*Handler.searchOffers")
		return
	}
	priceMax, err := queryFloat(r, "priceMax")
	if err != nil {
		writeBadRequest(w, r, err, "*Handler.searchOffers")
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeBadRequest(w, r, err, "*Handler.searchOffers")
		return
	}

	query := r.URL.Query()
	filter := models.SearchFilter{
		Title:    query.Get("title"),
		PriceMin: priceMin,
		PriceMax: priceMax,
		Sort:     query.Get("sort"),
		Page:     page,
	}

	result, err := h.services.ListingService.Search(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "*Handler.searchOffers")
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) getOffer(w http.ResponseWriter, r *http.Request) {
	listing, err := h.services.ListingService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "*Handler.getOffer")
		return
	}

	utils.WriteJSON(w, listing, http.StatusOK)
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := utils.GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated, "*Handler.updateOffer")
		return
	}

	if err := h.parseForm(w, r); err != nil {
		writeBadRequest(w, r, err, "*Handler.updateOffer")
		return
	}

	picture, err := formFile(r, "picture")
	if err != nil {
		writeBadRequest(w, r, err, "*Handler.updateOffer")
		return
	}

	id := chi.URLParam(r, "id")
	req := models.UpdateRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Brand:       r.FormValue("brand"),
		Size:        r.FormValue("size"),
		Condition:   r.FormValue("condition"),
		Color:       r.FormValue("color"),
		City:        r.FormValue("city"),
		Picture:     picture,
	}

	listing, err := h.services.ListingService.Update(r.Context(), id, actor, req)
	if err != nil {
		writeError(w, r, err, "*Handler.updateOffer")
		return
	}

	log.Debug().Str("listing_id", id).Str("actor_id", actor.ID).Msg("offer updated")
	utils.WriteJSON(w, models.UpdateResponse{Message: offerUpdatedMessage, Offer: listing}, http.StatusOK)
}
