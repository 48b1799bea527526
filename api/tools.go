package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turingair/flightassist/internal/tools"
)

// ToolHandler exposes the agent tool contract over HTTP, for callers that
// invoke the tools directly instead of through the chat model.
type ToolHandler struct {
	tools *tools.BookingTools
}

func NewToolHandler(bookingTools *tools.BookingTools) *ToolHandler {
	return &ToolHandler{tools: bookingTools}
}

func (h *ToolHandler) Register(router *gin.RouterGroup) {
	router.POST("/booking-details", h.bookingDetails)
	router.POST("/change-booking", h.changeBooking)
	router.POST("/cancel-booking", h.cancelBooking)
}

func (h *ToolHandler) bookingDetails(c *gin.Context) {
	var req tools.BookingDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.tools.GetBookingDetails(c.Request.Context(), req))
}

func (h *ToolHandler) changeBooking(c *gin.Context) {
	var req tools.ChangeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, h.tools.ChangeBooking(c.Request.Context(), req))
}

func (h *ToolHandler) cancelBooking(c *gin.Context) {
	var req tools.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, h.tools.CancelBooking(c.Request.Context(), req))
}
