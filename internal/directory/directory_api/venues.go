package directory_api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/zherujiang/spotlight/internal/models"
	"github.com/zherujiang/spotlight/internal/utils"
)

// ListVenues returns the venues grouped by city and state.
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.VenuesByCity(r.Context())
	if err != nil {
		h.sendError(w, r, "Failed to list venues", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Venues by city", groups))
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	term, err := searchTerm(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid search request", err.Error()))
		return
	}
	result, err := h.Service.SearchVenues(r.Context(), term)
	if err != nil {
		h.sendError(w, r, "Venue search failed", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Venue search results", result))
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid venue id", err.Error()))
		return
	}
	detail, err := h.Service.VenueDetail(r.Context(), id)
	if err != nil {
		h.sendError(w, r, "Venue not available", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Venue", detail))
}

// EditVenueForm returns the stored fields used to pre-fill the edit form.
func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid venue id", err.Error()))
		return
	}
	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.sendError(w, r, "Venue not available", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Venue form", venue.Fields()))
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var fields models.VenueFields
	if !h.decodeBody(w, r, &fields, func(form url.Values) error { return venueFieldsFromForm(form, &fields) }) {
		return
	}
	venue, err := h.Service.CreateVenue(r.Context(), fields)
	if err != nil {
		h.sendError(w, r, fmt.Sprintf("Venue %s could not be listed", fields.Name), err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(fmt.Sprintf("Venue %s was successfully listed", venue.Name), venue))
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid venue id", err.Error()))
		return
	}
	var fields models.VenueFields
	if !h.decodeBody(w, r, &fields, func(form url.Values) error { return venueFieldsFromForm(form, &fields) }) {
		return
	}
	venue, err := h.Service.UpdateVenue(r.Context(), id, fields)
	if err != nil {
		h.sendError(w, r, fmt.Sprintf("Venue %d could not be updated", id), err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(fmt.Sprintf("Venue %s was successfully updated", venue.Name), venue))
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid venue id", err.Error()))
		return
	}
	if err := h.Service.DeleteVenue(r.Context(), id); err != nil {
		h.sendError(w, r, fmt.Sprintf("Venue %d could not be deleted", id), err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(fmt.Sprintf("Venue %d was successfully deleted", id), nil))
}

// VenueQR serves a PNG share code linking to the venue page.
func (h *Handler) VenueQR(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid venue id", err.Error()))
		return
	}
	if _, err := h.Service.GetVenue(r.Context(), id); err != nil {
		h.sendError(w, r, "Venue not available", err)
		return
	}
	png, err := h.QRGenerator.VenueQR(id)
	if err != nil {
		h.sendError(w, r, "Failed to generate share code", err)
		return
	}
	sendPNG(w, png)
}
