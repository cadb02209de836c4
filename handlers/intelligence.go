package handlers

import (
	"net/http"

	"carrental/models"
	ai "carrental/services/intelligence"
	"carrental/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AIHandler struct {
	AIService ai.AIService
}

func NewAIHandler(svc ai.AIService) *AIHandler {
	return &AIHandler{AIService: svc}
}

// RecommendHandler handles POST /api/ai/recommendations.
func (h *AIHandler) RecommendHandler(c *gin.Context) {
	var in models.RecommendationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.AIService.Recommend(c.Request.Context(), in)
	if err != nil {
		getLogger(c).Error("Recommendation failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CarImageHandler handles POST /api/ai/car-image.
func (h *AIHandler) CarImageHandler(c *gin.Context) {
	var in models.CarImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.AIService.GenerateCarImage(c.Request.Context(), in)
	if err != nil {
		getLogger(c).Error("Car image generation failed", zap.String("carName", in.CarName), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
