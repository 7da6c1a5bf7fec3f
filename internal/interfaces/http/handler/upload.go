package handler

import (
	"errors"
	"net/http"

	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ImageFormField is the multipart field carrying an uploaded image
const ImageFormField = "image"

// UploadHandler turns multipart image fields into stored objects
type UploadHandler struct {
	BaseHandler
	uploadService *catalogapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *catalogapp.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload godoc
// @Summary      Upload an image
// @Description  Staff uploads land in products/, farmer uploads in farmers/
// @Tags         uploads
// @Accept       mpfd
// @Produce      json
// @Param        image formData file true "Image (jpeg, png, webp or gif, up to 5 MB)"
// @Success      200 {object} dto.Response{data=catalogapp.UploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	folder := "products"
	if middleware.CurrentFarmer(c) != nil {
		folder = "farmers"
	}
	h.upload(c, folder)
}

func (h *UploadHandler) upload(c *gin.Context, folder string) {
	resp, err := h.storeFormImage(c, folder)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp == nil {
		h.HandleError(c, catalogapp.ErrNoFile)
		return
	}
	h.Success(c, resp)
}

// storeFormImage stores the image field of a multipart request. It returns
// nil without error when the request has no such field.
func (h *UploadHandler) storeFormImage(c *gin.Context, folder string) (*catalogapp.UploadResponse, error) {
	file, err := c.FormFile(ImageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		case errors.As(err, &tooLarge):
			return nil, err
		}
		return nil, catalogapp.ErrNoFile
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return h.uploadService.UploadImage(c.Request.Context(), folder, f)
}
