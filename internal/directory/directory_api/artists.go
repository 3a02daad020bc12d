package directory_api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/zherujiang/spotlight/internal/models"
	"github.com/zherujiang/spotlight/internal/utils"
)

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Service.ListArtists(r.Context())
	if err != nil {
		h.sendError(w, r, "Failed to list artists", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Artists", artists))
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	term, err := searchTerm(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid search request", err.Error()))
		return
	}
	result, err := h.Service.SearchArtists(r.Context(), term)
	if err != nil {
		h.sendError(w, r, "Artist search failed", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Artist search results", result))
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid artist id", err.Error()))
		return
	}
	detail, err := h.Service.ArtistDetail(r.Context(), id)
	if err != nil {
		h.sendError(w, r, "Artist not available", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Artist", detail))
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid artist id", err.Error()))
		return
	}
	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.sendError(w, r, "Artist not available", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Artist form", artist.Fields()))
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var fields models.ArtistFields
	if !h.decodeBody(w, r, &fields, func(form url.Values) error { return artistFieldsFromForm(form, &fields) }) {
		return
	}
	artist, err := h.Service.CreateArtist(r.Context(), fields)
	if err != nil {
		h.sendError(w, r, fmt.Sprintf("Artist %s could not be listed", fields.Name), err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(fmt.Sprintf("Artist %s was successfully listed", artist.Name), artist))
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid artist id", err.Error()))
		return
	}
	var fields models.ArtistFields
	if !h.decodeBody(w, r, &fields, func(form url.Values) error { return artistFieldsFromForm(form, &fields) }) {
		return
	}
	artist, err := h.Service.UpdateArtist(r.Context(), id, fields)
	if err != nil {
		h.sendError(w, r, fmt.Sprintf("Artist %d could not be updated", id), err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(fmt.Sprintf("Artist %s was successfully updated", artist.Name), artist))
}

func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid artist id", err.Error()))
		return
	}
	if err := h.Service.DeleteArtist(r.Context(), id); err != nil {
		h.sendError(w, r, fmt.Sprintf("Artist %d could not be deleted", id), err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(fmt.Sprintf("Artist %d was successfully deleted", id), nil))
}

func (h *Handler) ArtistQR(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistId")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid artist id", err.Error()))
		return
	}
	if _, err := h.Service.GetArtist(r.Context(), id); err != nil {
		h.sendError(w, r, "Artist not available", err)
		return
	}
	png, err := h.QRGenerator.ArtistQR(id)
	if err != nil {
		h.sendError(w, r, "Failed to generate share code", err)
		return
	}
	sendPNG(w, png)
}
