package asset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/stickerstage/internal/measure"
	"github.com/inamate/stickerstage/internal/typeid"
)

var contentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

// UploadResponse is returned from the upload endpoint.
type UploadResponse struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Type   string  `json:"type"`
	Name   string  `json:"name"`
}

// Handler serves asset upload and retrieval endpoints.
type Handler struct {
	store   *Store
	maxSize int64
}

// NewHandler creates a handler that keeps uploads in store.
func NewHandler(store *Store, maxSize int64) *Handler {
	return &Handler{store: store, maxSize: maxSize}
}

// Upload handles POST /assets/upload (multipart form with "file" field).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		http.Error(w, fmt.Sprintf("file too large (max %d bytes)", h.maxSize), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload", "error", err)
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	// Only the header is decoded; the frontend draws the original bytes.
	size, format, err := measure.Picture(bytes.NewReader(data))
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, measure.ErrEmptyPicture) {
			err = errors.New("unsupported or corrupt image")
		}
		http.Error(w, "invalid image: "+err.Error(), status)
		return
	}

	a := &Asset{
		ID:          typeid.NewAssetID(),
		Name:        header.Filename,
		Format:      format,
		ContentType: contentTypes[format],
		Size:        size,
		Data:        data,
	}
	h.store.Put(a)
	slog.Info("asset uploaded", "id", a.ID, "format", format, "width", size.Width, "height", size.Height)

	resp := UploadResponse{
		ID:     a.ID,
		URL:    "/assets/" + a.ID,
		Width:  size.Width,
		Height: size.Height,
		Type:   format,
		Name:   a.Name,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Serve handles GET /assets/{assetId}.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assetId"]
	if err := typeid.Check(id, typeid.PrefixAsset); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, ok := h.store.Lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	// Asset IDs are unique, so content is immutable
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if a.ContentType != "" {
		w.Header().Set("Content-Type", a.ContentType)
	}
	http.ServeContent(w, r, a.Name, time.Time{}, bytes.NewReader(a.Data))
}
