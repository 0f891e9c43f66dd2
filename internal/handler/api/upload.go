package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const uploadField = "image"

var (
	errNotAnImage   = errs.Mark(errs.New("only image uploads are allowed"), errs.ErrDomainValidation)
	errFileTooLarge = errs.New("file too large")
)

type ImageStore interface {
	SaveImage(ctx context.Context, contentType string, r io.Reader) (string, error)
}

type UploadHandler struct {
	store    ImageStore
	maxBytes int64
}

func NewUploadHandler(store ImageStore, maxBytes int64) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes}
}

// @Summary Upload an image
// @Tags upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} resdto.UploadResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}
	// multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+4096)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errFileTooLarge, "File too large", nil)
			return
		}
		httperr.BadRequest(c, err, "Missing image file")
		return
	}
	if fh.Size > h.maxBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errFileTooLarge, "File too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		httperr.Abort(c, errNotAnImage)
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Abort(c, errs.Wrap(err, "open upload"))
		return
	}
	defer f.Close()

	url, err := h.store.SaveImage(c.Request.Context(), contentType, f)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.UploadResponse{ImageURL: url})
}
