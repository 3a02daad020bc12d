package directory_api

import (
	"net/http"
	"net/url"

	"github.com/zherujiang/spotlight/internal/models"
	"github.com/zherujiang/spotlight/internal/utils"
)

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Service.ListShows(r.Context())
	if err != nil {
		h.sendError(w, r, "Failed to list shows", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Shows", shows))
}

// CreateShow books a show from JSON or the booking form.
func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req models.ShowRequest
	if !h.decodeBody(w, r, &req, func(form url.Values) error { return showRequestFromForm(form, &req) }) {
		return
	}
	show, err := h.Service.CreateShow(r.Context(), req)
	if err != nil {
		h.sendError(w, r, "Show could not be listed", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Show was successfully listed", show))
}
