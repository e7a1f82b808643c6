package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"smart-hotel/services"
	"smart-hotel/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Lifecycle Lifecycle
	Bookings  BookingReader
}

func NewBookingController(lifecycle Lifecycle, bookings BookingReader) *BookingController {
	return &BookingController{Lifecycle: lifecycle, Bookings: bookings}
}

type lockRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required"`
	LockCode   string `json:"lockCode" binding:"required"`
}

// Check-out reports every business failure as 500 carrying its message.
func checkoutStatus(e *services.AppError) int {
	if e.Kind == services.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func cancelStatus(e *services.AppError) int {
	switch {
	case errors.Is(e, services.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(e, services.ErrInvalidState), e.Kind == services.KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Checkout handles POST /api/bookings/checkout.
func (bc *BookingController) Checkout(c *gin.Context) {
	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "please provide room number and smart lock code", "")
		return
	}

	res, err := bc.Lifecycle.CheckOut(c.Request.Context(), req.RoomNumber, req.LockCode, c.ClientIP())
	if err != nil {
		respondError(c, err, checkoutStatus)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res, "check-out successful")
}

// Cancel handles PATCH /api/bookings/:bookingId/cancel.
func (bc *BookingController) Cancel(c *gin.Context) {
	id, ok := parseID(c, "bookingId")
	if !ok {
		return
	}
	if err := bc.Lifecycle.CancelBooking(c.Request.Context(), id, c.ClientIP()); err != nil {
		respondError(c, err, cancelStatus)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "booking cancelled")
}

// List handles GET /api/bookings?page=&limit=.
func (bc *BookingController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := bc.Bookings.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res, "bookings loaded")
}

// Current handles GET /api/bookings/current.
func (bc *BookingController) Current(c *gin.Context) {
	stays, err := bc.Bookings.Current(c.Request.Context())
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays, "current stays loaded")
}

// ByIDCard handles GET /api/bookings/guest/:idCard.
func (bc *BookingController) ByIDCard(c *gin.Context) {
	items, err := bc.Bookings.ByIDCard(c.Request.Context(), c.Param("idCard"))
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items, "guest bookings loaded")
}
