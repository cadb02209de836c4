package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"carrental/models"
	"carrental/services/car"
	"carrental/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CarHandler struct {
	CarService car.CarService
}

func NewCarHandler(svc car.CarService) *CarHandler {
	return &CarHandler{CarService: svc}
}

// ListCarsHandler handles GET /api/cars with the browse filters as query params.
func (h *CarHandler) ListCarsHandler(c *gin.Context) {
	var filter models.CarFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}
	cars, err := h.CarService.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars, "count": len(cars)})
}

func (h *CarHandler) BrandsHandler(c *gin.Context) {
	brands, err := h.CarService.Brands(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *CarHandler) GetCarHandler(c *gin.Context) {
	out, err := h.CarService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CarImageHandler handles GET /api/cars/:id/image.
func (h *CarHandler) CarImageHandler(c *gin.Context) {
	url, err := h.CarService.DisplayImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

func (h *CarHandler) CreateCarHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var in models.Car
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.CarService.Create(c.Request.Context(), actor, &in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CarHandler) UpdateCarHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var in models.Car
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.CarService.Update(c.Request.Context(), actor, c.Param("id"), &in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SetAvailabilityHandler handles PATCH /api/cars/:id/availability.
func (h *CarHandler) SetAvailabilityHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.CarService.SetAvailability(c.Request.Context(), actor, c.Param("id"), *req.Available); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "available": *req.Available})
}

// UploadImageHandler handles POST /api/cars/:id/images as multipart "file".
func (h *CarHandler) UploadImageHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}
	defer func() {
		if err := os.Remove(tempFilePath); err != nil {
			getLogger(c).Warn("Failed to remove temp upload", zap.String("path", tempFilePath), zap.Error(err))
		}
	}()

	out, err := h.CarService.UploadImage(c.Request.Context(), actor, c.Param("id"), tempFilePath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
