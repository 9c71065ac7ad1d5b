package http

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkpothq/inkpot/pkg/blogsdk"
	"github.com/inkpothq/inkpot/pkg/httpx"
	"github.com/inkpothq/inkpot/pkg/slogx"

	"github.com/google/uuid"
)

// maxUploadBytes bounds post image uploads.
const maxUploadBytes = 10 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores post images under Dir. Filenames are
// server-assigned so clients cannot influence paths on disk.
type UploadHandler struct {
	Dir string
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	name := uuid.New().String() + ext

	if err := os.MkdirAll(h.Dir, 0750); err != nil {
		log.Error("creating upload dir failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
		return
	}

	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		log.Error("creating upload file failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error("writing upload failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, blogsdk.UploadResponse{Filename: name})
}
