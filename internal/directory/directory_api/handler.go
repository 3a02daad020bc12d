package directory_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zherujiang/spotlight/internal/directory/db"
	directory "github.com/zherujiang/spotlight/internal/directory/service"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/share"
	"github.com/zherujiang/spotlight/internal/utils"
)

// maxFormMemory bounds the in-memory part of multipart bodies.
const maxFormMemory = 1 << 20

type Handler struct {
	Service     *directory.DirectoryService
	QRGenerator *share.QRGenerator
	Logger      *logger.Logger
	validate    *validator.Validate
}

func NewHandler(service *directory.DirectoryService, qr *share.QRGenerator, logger *logger.Logger) *Handler {
	return &Handler{
		Service:     service,
		QRGenerator: qr,
		Logger:      logger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes registers the directory routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Post("/create", h.CreateVenue)
		r.Route("/{venueId}", func(r chi.Router) {
			r.Get("/", h.GetVenue)
			r.Delete("/", h.DeleteVenue)
			r.Get("/edit", h.EditVenueForm)
			r.Post("/edit", h.UpdateVenue)
			r.Post("/delete", h.DeleteVenue)
			r.Get("/qr", h.VenueQR)
		})
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Post("/create", h.CreateArtist)
		r.Route("/{artistId}", func(r chi.Router) {
			r.Get("/", h.GetArtist)
			r.Delete("/", h.DeleteArtist)
			r.Get("/edit", h.EditArtistForm)
			r.Post("/edit", h.UpdateArtist)
			r.Post("/delete", h.DeleteArtist)
			r.Get("/qr", h.ArtistQR)
		})
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Post("/create", h.CreateShow)
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Ping(r.Context()); err != nil {
		h.Logger.Error("HEALTH", fmt.Sprintf("Store ping failed: %v", err))
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse("Store unavailable", http.StatusText(http.StatusServiceUnavailable)))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ok", nil))
}

// sendError maps a directory failure to its HTTP status.
func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := http.StatusInternalServerError
	var refErr *db.ReferenceError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &refErr):
		status = http.StatusUnprocessableEntity
		utils.WriteJSON(w, status, utils.ErrorResponse(message, refErr.Error()))
		return
	case errors.Is(err, db.ErrConstraintViolation):
		status = http.StatusConflict
	case errors.Is(err, db.ErrTransient):
		status = http.StatusServiceUnavailable
	}

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("API", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
		detail = http.StatusText(status)
	}
	utils.WriteJSON(w, status, utils.ErrorResponse(message, detail))
}

// decodeBody fills dst from a JSON body, or through fromForm when the body
// is form encoded, then validates it.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, fromForm func(url.Values) error) bool {
	if isFormRequest(r) {
		if err := parseForm(r); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
			return false
		}
		if err := fromForm(r.Form); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
			return false
		}
	} else if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request", validationMessage(err)))
		return false
	}
	return true
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// searchTerm reads search_term from a JSON body or from form values.
func searchTerm(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			SearchTerm string `json:"search_term"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", err
		}
		return body.SearchTerm, nil
	}
	if err := parseForm(r); err != nil {
		return "", err
	}
	return r.FormValue("search_term"), nil
}

func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", param, raw)
	}
	return id, nil
}

func sendPNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
