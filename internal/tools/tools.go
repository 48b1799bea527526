package tools

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/internal/domain"
	"github.com/turingair/flightassist/internal/service/booking"
)

// Request payloads sent by the chat agent.

type BookingDetailsRequest struct {
	BookingNumber string `json:"bookingNumber"`
	Name          string `json:"name"`
}

type ChangeBookingRequest struct {
	BookingNumber string `json:"bookingNumber"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	From          string `json:"from"`
	To            string `json:"to"`
}

type CancelBookingRequest struct {
	BookingNumber string `json:"bookingNumber"`
	Name          string `json:"name"`
}

// BookingDetails is the agent-facing projection. On a failed lookup only
// bookingNumber and name are populated; the agent reads the missing fields as
// "not found", so empty fields must stay off the wire.
type BookingDetails struct {
	BookingNumber string `json:"bookingNumber"`
	Name          string `json:"name"`
	Date          string `json:"date,omitempty"`
	BookingStatus string `json:"bookingStatus,omitempty"`
	From          string `json:"from,omitempty"`
	To            string `json:"to,omitempty"`
	BookingClass  string `json:"bookingClass,omitempty"`
}

// BookingTools translates the service's typed failures into the text and
// null-shape results the chat agent can act on. It is the only layer that
// interprets those failures.
type BookingTools struct {
	service booking.BookingUseCase
}

func NewBookingTools(service booking.BookingUseCase) *BookingTools {
	return &BookingTools{service: service}
}

// GetBookingDetails never fails: when the lookup misses, it echoes the
// request with every other field absent.
func (t *BookingTools) GetBookingDetails(ctx context.Context, req BookingDetailsRequest) BookingDetails {
	log.Info().Str("bookingNumber", req.BookingNumber).Str("name", req.Name).
		Msg("tool: get booking details")

	details, err := t.service.GetDetails(ctx, req.BookingNumber, req.Name)
	if err != nil {
		log.Warn().Err(err).Msg("booking details lookup failed")
		return BookingDetails{BookingNumber: req.BookingNumber, Name: req.Name}
	}
	return ToWireDetails(details)
}

func (t *BookingTools) ChangeBooking(ctx context.Context, req ChangeBookingRequest) string {
	log.Info().Str("bookingNumber", req.BookingNumber).Str("name", req.Name).
		Str("date", req.Date).Str("from", req.From).Str("to", req.To).
		Msg("tool: change booking")

	if err := t.service.Change(ctx, req.BookingNumber, req.Name, req.Date, req.From, req.To); err != nil {
		log.Error().Err(err).Msg("change booking failed")
		return "修改失败：" + err.Error()
	}
	return "预订信息修改成功"
}

func (t *BookingTools) CancelBooking(ctx context.Context, req CancelBookingRequest) string {
	log.Info().Str("bookingNumber", req.BookingNumber).Str("name", req.Name).
		Msg("tool: cancel booking")

	if err := t.service.Cancel(ctx, req.BookingNumber, req.Name); err != nil {
		log.Error().Err(err).Msg("cancel booking failed")
		return "取消失败：" + err.Error()
	}
	return "预订取消成功"
}

// ToWireDetails serialises a projection for the agent and the listing
// endpoint. This is the only place enum values become labels.
func ToWireDetails(d booking.BookingDetails) BookingDetails {
	return BookingDetails{
		BookingNumber: d.BookingNumber,
		Name:          d.Name,
		Date:          d.Date.Format(domain.DateLayout),
		BookingStatus: string(d.Status),
		From:          d.From,
		To:            d.To,
		BookingClass:  string(d.Class),
	}
}
