package controllers

import (
	"net/http"

	"github.com/HadarPadael/facyBook-Server/logger"
	"github.com/HadarPadael/facyBook-Server/services"
)

// S3Controller hands out presigned URLs for picture upload and retrieval.
type S3Controller struct {
	Media *services.S3Service
}

// NewS3Controller creates a new instance of S3Controller
func NewS3Controller(media *services.S3Service) *S3Controller {
	return &S3Controller{Media: media}
}

// GenerateUploadURL handles GET /api/media/upload-url?fileName=&fileType=.
func (c *S3Controller) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	url, key, err := c.Media.GenerateUploadURL(r.Context(), fileName, fileType)
	if err != nil {
		logger.Errorf("failed to presign upload: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GenerateReadURL handles GET /api/media/read-url?key=.
func (c *S3Controller) GenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	url, err := c.Media.GenerateReadURL(r.Context(), key)
	if err != nil {
		logger.Errorf("failed to presign read: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate read URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
