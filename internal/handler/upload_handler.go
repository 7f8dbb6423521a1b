package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/service"
)

// UploadHandler accepts image uploads.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadResponse describes a stored image.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
}

// Upload godoc
// @Summary Upload an image
// @Description Stores the multipart part "file" under the name given in "img" (falls back to the part's own file name). Existing files are never overwritten.
// @Description Only PNG, JPEG, GIF and WebP are accepted. A session cookie is required, so browser clients must send credentials with the request.
// @Tags upload
// @Accept mpfd
// @Produce json
// @Param img formData string false "Target file name"
// @Param file formData file true "Image"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := sessionUser(c); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return errorResponse(apperrors.ErrNoFile)
		}
		return invalidRequest(err)
	}

	name := c.FormValue("img")
	if strings.TrimSpace(name) == "" {
		name = fileHeader.Filename
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errorResponse(err)
	}
	defer src.Close()

	saved, err := h.uploadService.SaveImage(c.Request().Context(), name, src)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Message:  "image has been uploaded",
		Filename: saved.Filename,
		MimeType: saved.MimeType,
	})
}
