package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/storage"
)

type ImageStore interface {
	PresignUpload(ctx context.Context, key string, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadHandler hands out presigned URLs for project images. The server
// never touches the image bytes itself.
type UploadHandler struct {
	images ImageStore
}

func NewUploadHandler(images ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

type PresignUploadRequest struct {
	ProjectID   string `json:"project_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type PresignUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

func (h *UploadHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProjectID == "" {
		api.Error(w, http.StatusBadRequest, "project_id is required")
		return
	}
	if req.Filename == "" {
		api.Error(w, http.StatusBadRequest, "filename is required")
		return
	}
	if !storage.ValidImageContentType(req.ContentType) {
		api.Error(w, http.StatusBadRequest, "unsupported content type")
		return
	}

	key := storage.ImageKey(req.ProjectID, req.Filename)
	url, err := h.images.PresignUpload(r.Context(), key, req.ContentType)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, PresignUploadResponse{
		Key:       key,
		UploadURL: url,
	})
}

type PresignDownloadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		api.Error(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := h.images.PresignDownload(r.Context(), key)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, PresignDownloadResponse{URL: url})
}

// DeleteImage removes an image object, e.g. after its project is
// deleted or the image is replaced.
func (h *UploadHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		api.Error(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := h.images.Delete(r.Context(), key); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusNoContent, nil)
}
