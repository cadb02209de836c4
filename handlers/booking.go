package handlers

import (
	"net/http"

	"carrental/models"
	"carrental/services/booking"
	"carrental/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

// QuoteHandler prices a booking request without saving it.
func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	quote, err := h.BookingService.Quote(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.BookingService.Create(c.Request.Context(), actor, req)
	if err != nil {
		getLogger(c).Warn("Booking not created", zap.String("userId", actor.ID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	b, err := h.BookingService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMineHandler returns the caller's bookings; drivers get the bookings they serve.
func (h *BookingHandler) ListMineHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var (
		list []models.Booking
		err  error
	)
	if actor.Role == models.RoleDriver {
		list, err = h.BookingService.ListForDriver(c.Request.Context(), actor)
	} else {
		list, err = h.BookingService.ListMine(c.Request.Context(), actor)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// ListAllHandler handles GET /api/bookings?status=.
func (h *BookingHandler) ListAllHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	list, err := h.BookingService.ListAll(c.Request.Context(), actor, models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *BookingHandler) DashboardHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	d, err := h.BookingService.Dashboard(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// CancelBookingHandler always answers 200 once the booking is found and visible;
// the outcome says whether it was actually cancelled.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	out, err := h.BookingService.Cancel(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatusHandler handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.BookingService.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ReportIssueHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.BookingService.ReportIssue(c.Request.Context(), actor, c.Param("id"), req.Description)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
