package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/mirastore/catalog_api/internal/imaging"
	"github.com/mirastore/catalog_api/internal/utils"
)

// maxUploadBytes caps the accepted image upload size.
const maxUploadBytes = 10 << 20

// ImageHandler converts uploaded image files into storable data URLs. This
// backs the form preview step: the admin UI uploads the selected file and
// gets back the encoded string it later submits with the product.
type ImageHandler struct{}

// NewImageHandler constructs an ImageHandler.
func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// UploadImage handles POST /v1/admin/images (multipart field "image").
// An upload the pipeline cannot encode yields an empty data URL, meaning
// "no image"; that is not an error.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Missing image file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		utils.Error(c, 400, "FILE_TOO_LARGE", "Image must be 10MB or smaller")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Failed to read image file")
		return
	}

	dataURL := imaging.Ingest(data, header.Header.Get("Content-Type"))

	utils.Success(c, 200, "Image processed", gin.H{
		"dataUrl":       dataURL,
		"originalBytes": header.Size,
		"storedBytes":   len(dataURL),
	})
}
