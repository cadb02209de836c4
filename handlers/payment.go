package handlers

import (
	"net/http"

	"carrental/services/payment"
	"carrental/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	PaymentService payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{PaymentService: svc}
}

// CreateIntentHandler handles POST /api/bookings/:id/payment-intent.
func (h *PaymentHandler) CreateIntentHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	pi, err := h.PaymentService.CreateIntent(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pi)
}

// ConfirmHandler handles POST /api/bookings/:id/payment-confirm.
func (h *PaymentHandler) ConfirmHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	pi, err := h.PaymentService.Confirm(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pi)
}
