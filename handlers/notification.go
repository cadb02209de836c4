package handlers

import (
	"net/http"

	"carrental/models"
	"carrental/services/notification"
	"carrental/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	NotificationService notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{NotificationService: svc}
}

// SendHandler handles POST /api/notifications. The record is accepted and
// delivered asynchronously.
func (h *NotificationHandler) SendHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.NotificationService.Send(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, n)
}
