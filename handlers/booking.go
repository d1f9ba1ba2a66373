package handlers

import (
	"net/http"

	"staywise/models"
	"staywise/services/payment"
	"staywise/services/reservation"
	"staywise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking lifecycle endpoints. The client create
// path only opens a checkout session; the booking row itself appears when the
// payment webhook settles.
type BookingHandler struct {
	Reservations *reservation.Service
	Payments     *payment.Orchestrator

	logger *zap.Logger
}

func NewBookingHandler(reservations *reservation.Service, payments *payment.Orchestrator, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Reservations: reservations, Payments: payments, logger: logger}
}

// CreateBookingHandler opens a checkout session for the authenticated client's
// proposed stay.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Payments.OpenSession(c.Request.Context(), identity.Email, input.RoomNr, input.StartDate, input.EndDate)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateBookingAdminHandler persists a booking directly, bypassing payment.
func (h *BookingHandler) CreateBookingAdminHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.ClientEmail == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "clientEmail is required")
		return
	}

	booking, err := h.Reservations.CreateDirect(c.Request.Context(), input)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateBookingAdminHandler changes a booking's end date and reprices it.
func (h *BookingHandler) UpdateBookingAdminHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Reservations.Update(c.Request.Context(), input)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetClientBookingsHandler lists the authenticated client's bookings.
func (h *BookingHandler) GetClientBookingsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	bookings, err := h.Reservations.ListByClient(c.Request.Context(), identity.Email)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetAllBookingsHandler(c *gin.Context) {
	bookings, err := h.Reservations.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	booking, err := h.Reservations.GetByKey(c.Request.Context(), c.Param("roomNr"), c.Param("startDate"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBookingHandler cancels the authenticated client's own booking.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	err := h.Reservations.Cancel(c.Request.Context(), c.Param("roomNr"), c.Param("startDate"), identity)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteBookingAdminHandler cancels any booking, no ownership check.
func (h *BookingHandler) DeleteBookingAdminHandler(c *gin.Context) {
	err := h.Reservations.CancelAdmin(c.Request.Context(), c.Param("roomNr"), c.Param("startDate"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
