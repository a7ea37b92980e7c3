package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"
)

var uploadWhitespace = regexp.MustCompile(`\s+`)

// imageExtensions lists the upload types the back-office accepts for
// product images.
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
}

// UploadHandler stores admin image uploads on disk and hands back the
// public path the catalog can reference.
type UploadHandler struct {
	dir         string
	maxUploadMB int64
	logger      *slog.Logger
}

// NewUploadHandler creates a new image upload HTTP handler. Files are
// written under dir, which must already exist.
func NewUploadHandler(dir string, maxUploadMB int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		dir:         dir,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// UploadImage handles POST /api/v1/admin/uploads
// It accepts a multipart upload ("file") holding an image and stores it
// under a uuid-prefixed name so repeated uploads never collide.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB<<20)
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart upload: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file field is required"},
		})
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := imageExtensions[ext]; !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "unsupported image type: " + ext},
		})
		return
	}

	filename := uuid.New().String() + "-" + uploadWhitespace.ReplaceAllString(name, "-")
	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "image uploaded",
		slog.String("filename", filename),
		slog.Int64("size", header.Size),
	)

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{
		"url": "/uploads/" + filename,
	}})
}
