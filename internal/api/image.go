package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/types"
)

// MaxImageSize is the largest accepted upload
const MaxImageSize = 10 << 20

type ImageHandler struct {
	images  service.IImageService
	limiter *middleware.RateLimiter
}

func NewImageHandler(images service.IImageService, limiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{images: images, limiter: limiter}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	{
		images.POST("/addImage/:category", h.limiter.RateLimitMiddleware(), h.AddImage)
		images.POST("/deleteImage/:category/:id", h.DeleteImage)
		images.POST("/deleteAllImagesFromCategory/:category/:ownerId", h.DeleteAllImagesFromCategory)
	}
}

// AddImage stores the multipart field "file" under the caller's prefix
func (h *ImageHandler) AddImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	resp, err := h.images.Upload(c.Request.Context(), c.Param("category"), middleware.UserID(c),
		header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	n, err := h.images.Delete(c.Request.Context(), c.Param("category"), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeleteImagesResponse{Deleted: n})
}

func (h *ImageHandler) DeleteAllImagesFromCategory(c *gin.Context) {
	n, err := h.images.DeleteAll(c.Request.Context(), middleware.UserID(c), c.Param("category"), c.Param("ownerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeleteImagesResponse{Deleted: n})
}
