package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/api/metrics"
	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/infrastructure/media"
)

type UploadHandler struct {
	uploader *media.Uploader
}

func NewUploadHandler(uploader *media.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Image validates and forwards an image file to the media host.
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file (max 5 MB)"
// @Success      200    {object}  uploadResponse
// @Failure      400    {object}  map[string]string
// @Failure      413    {object}  map[string]string
// @Router       /api/uploads/image [post]
func (h *UploadHandler) Image(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read image file")
	}
	defer file.Close()

	url, err := h.uploader.Upload(
		c.Request().Context(),
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
		fileHeader.Size,
		file,
	)
	switch {
	case errors.Is(err, domain.ErrNotAnImage), errors.Is(err, domain.ErrImageTooLarge):
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return err
	case err != nil:
		metrics.UploadsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, uploadResponse{URL: url})
}
