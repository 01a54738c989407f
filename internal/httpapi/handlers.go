package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"winemap/internal/imageenc"
	"winemap/internal/models"
	"winemap/internal/placement"
	"winemap/internal/resolver"
	"winemap/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

type typeOption struct {
	Type  models.WineType    `json:"type"`
	Color placement.PinColor `json:"color"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func criteriaFromQuery(r *http.Request) store.Criteria {
	q := r.URL.Query()
	return store.Criteria{
		Type:     models.WineType(q.Get("type")),
		Grape:    q.Get("grape"),
		Location: q.Get("location"),
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": h.store.Len()})
}

func (h *Handler) listTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]typeOption, 0, len(models.WineTypes))
	for _, t := range models.WineTypes {
		out = append(out, typeOption{Type: t, Color: placement.ColorFor(t)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) listRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, placement.Overlays())
}

func (h *Handler) listMarkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, placement.Markers(h.store.Filter(criteriaFromQuery(r))))
}

func (h *Handler) listWines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Entries(criteriaFromQuery(r)))
}

func (h *Handler) addWine(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(w, r)
	if err != nil {
		writeError(w, decodeErrorStatus(err), err.Error())
		return
	}

	record, err := h.store.Add(r.Context(), &draft)
	if err != nil {
		status := addErrorStatus(err)
		switch status {
		case http.StatusInternalServerError:
			h.logger.Error("add failed", zap.Error(err))
			writeError(w, status, "could not save the record")
			return
		case http.StatusBadGateway:
			h.logger.Warn("geocoding failed", zap.Error(err))
			writeError(w, status, "location lookup is unavailable, try again later")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func addErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrLocationNotFound), errors.Is(err, imageenc.ErrEncoding):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrAddInFlight):
		return http.StatusConflict
	case errors.Is(err, resolver.ErrGeocoder):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errImageTooLarge is returned by decodeDraft when the image part exceeds
// imageenc.MaxSize.
var errImageTooLarge = fmt.Errorf("image exceeds %d bytes", imageenc.MaxSize)

// decodeDraft accepts either a JSON draft or a multipart form with an
// optional "image" file part. The body is capped at maxUploadSize.
func decodeDraft(w http.ResponseWriter, r *http.Request) (models.Draft, error) {
	var draft models.Draft
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			return draft, fmt.Errorf("invalid JSON body: %w", err)
		}
		return draft, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return draft, fmt.Errorf("invalid multipart form: %w", err)
	}
	draft = models.Draft{
		Name:     r.FormValue("name"),
		Grape:    r.FormValue("grape"),
		Comment:  r.FormValue("comment"),
		Type:     models.WineType(r.FormValue("type")),
		Location: r.FormValue("location"),
		ImageURL: r.FormValue("imageUrl"),
	}
	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return draft, nil
	}
	if err != nil {
		return draft, fmt.Errorf("invalid image part: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, imageenc.MaxSize+1))
	if err != nil {
		return draft, fmt.Errorf("read image part: %w", err)
	}
	if len(data) > imageenc.MaxSize {
		return draft, errImageTooLarge
	}
	draft.Image = data
	return draft, nil
}

// decodeErrorStatus maps a decodeDraft failure to a status code.
func decodeErrorStatus(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) || errors.Is(err, errImageTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *Handler) deleteWine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	asked := false
	deleted, err := h.store.Delete(r.Context(), index, func(int, models.WineRecord) bool {
		asked = true
		return confirmed
	})
	switch {
	case err != nil:
		h.logger.Error("delete failed", zap.Int("index", index), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save the collection")
	case deleted:
		w.WriteHeader(http.StatusNoContent)
	case !asked:
		writeError(w, http.StatusNotFound, fmt.Sprintf("no record at index %d", index))
	case !confirmed:
		writeError(w, http.StatusPreconditionFailed, "deletion must be confirmed with confirm=true")
	default:
		writeError(w, http.StatusConflict, "the collection changed, reload and retry")
	}
}

func (h *Handler) wineImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	records := h.store.Records()
	if index < 0 || index >= len(records) || records[index].Image == "" {
		writeError(w, http.StatusNotFound, "no image")
		return
	}

	image := records[index].Image
	if !strings.HasPrefix(image, "data:") {
		if !imageenc.IsWebURL(image) {
			writeError(w, http.StatusNotFound, "no image")
			return
		}
		http.Redirect(w, r, image, http.StatusFound)
		return
	}
	contentType, data, err := imageenc.Decode(image)
	if err != nil {
		h.logger.Warn("stored image is not decodable", zap.Int("index", index), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "stored image is corrupt")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
