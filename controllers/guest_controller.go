package controllers

import (
	"net/http"

	"smart-hotel/services"
	"smart-hotel/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Lifecycle Lifecycle
	Guests    GuestReader
}

func NewGuestController(lifecycle Lifecycle, guests GuestReader) *GuestController {
	return &GuestController{Lifecycle: lifecycle, Guests: guests}
}

type registerRequest struct {
	Name         string `json:"name" binding:"required"`
	IDCard       string `json:"idCard" binding:"required,idcard"`
	Phone        string `json:"phone" binding:"required,cnmobile"`
	Email        string `json:"email"`
	Gender       string `json:"gender" binding:"required,oneof=Male Female"`
	BirthDate    string `json:"birthDate"`
	Address      string `json:"address"`
	RoomID       uint   `json:"roomId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	LockCode     string `json:"lockCode" binding:"required,lockcode"`
}

// Check-in failures other than bad input are reported as 500 with their message.
func registerStatus(e *services.AppError) int {
	if e.Kind == services.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Register handles POST /api/guests/register.
func (gc *GuestController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.BindingMessage(err), "")
		return
	}

	res, err := gc.Lifecycle.RegisterAndCheckIn(c.Request.Context(), services.RegisterInput(req), c.ClientIP())
	if err != nil {
		respondError(c, err, registerStatus)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res, "registration successful")
}

// GetByID handles GET /api/guests/:guestId.
func (gc *GuestController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "guestId")
	if !ok {
		return
	}
	guest, err := gc.Guests.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest, "guest loaded")
}

// SearchByIDCard handles GET /api/guests/search/id-card/:idCard.
func (gc *GuestController) SearchByIDCard(c *gin.Context) {
	guest, err := gc.Guests.GetByIDCard(c.Request.Context(), c.Param("idCard"))
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest, "guest loaded")
}

// Bookings handles GET /api/guests/:guestId/bookings.
func (gc *GuestController) Bookings(c *gin.Context) {
	id, ok := parseID(c, "guestId")
	if !ok {
		return
	}
	bookings, err := gc.Guests.Bookings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings, "guest bookings loaded")
}
