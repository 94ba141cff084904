package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/imaging"
)

// ImagesHandler handles photo upload and processing.
type ImagesHandler struct{}

// Upload handles POST /api/images: accepts a multipart photo, downscales and
// re-encodes it, and returns the data URL the client stores on the item.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	if !imaging.AllowedMIME[mime] {
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "could not process image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"image": result.DataURL()})
}
