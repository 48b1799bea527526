package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turingair/flightassist/internal/service/booking"
	"github.com/turingair/flightassist/internal/tools"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/list", h.list)
}

func (h *BookingHandler) list(c *gin.Context) {
	details := h.service.List(c.Request.Context())

	out := make([]tools.BookingDetails, 0, len(details))
	for _, d := range details {
		out = append(out, tools.ToWireDetails(d))
	}
	c.JSON(http.StatusOK, out)
}
