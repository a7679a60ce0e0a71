package images

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apimiddleware "github.com/punto-pos/pos-backend/internal/api/http/middleware"
	"github.com/punto-pos/pos-backend/internal/logging"
)

// Handler exposes the dish-image upload endpoint. Uploads are size-capped
// and rate-limited with a shared token bucket.
type Handler struct {
	uploader *Uploader
	limiter  *rate.Limiter
	maxBytes int64
	log      *logging.Logger
}

func NewHandler(uploader *Uploader, maxUploadMB int, log *logging.Logger) *Handler {
	return &Handler{
		uploader: uploader,
		limiter:  rate.NewLimiter(rate.Limit(2), 5),
		maxBytes: int64(maxUploadMB) << 20,
		log:      log,
	}
}

// Register attaches the upload route; the caller guards the group with the
// admin role middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/images", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many uploads, slow down"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "image too large"})
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to read image"})
		return
	}
	if int64(len(raw)) > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "image too large"})
		return
	}

	normalized, err := Normalize(raw)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"ok": false, "error": "unsupported image type"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	path, err := h.uploader.Upload(c.Request.Context(), normalized)
	if err != nil {
		h.log.ErrorReq("image_upload", "image upload failed", apimiddleware.RequestID(c), map[string]any{"filename": header.Filename}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":   true,
		"path": path,
		"url":  h.uploader.PublicURL(path),
	})
}
