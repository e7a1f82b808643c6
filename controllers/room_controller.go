package controllers

import (
	"net/http"
	"strings"

	"smart-hotel/models"
	"smart-hotel/services"
	"smart-hotel/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Lifecycle Lifecycle
	Rooms     RoomReader
}

func NewRoomController(lifecycle Lifecycle, rooms RoomReader) *RoomController {
	return &RoomController{Lifecycle: lifecycle, Rooms: rooms}
}

type roomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type lockCodeRequest struct {
	LockCode string `json:"lockCode" binding:"required,lockcode"`
}

// List handles GET /api/rooms.
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Rooms.List(c.Request.Context())
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms, "rooms loaded")
}

// Available handles GET /api/rooms/available.
func (rc *RoomController) Available(c *gin.Context) {
	rooms, err := rc.Rooms.Available(c.Request.Context())
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms, "available rooms loaded")
}

// GetByNumber handles GET /api/rooms/:roomNumber.
func (rc *RoomController) GetByNumber(c *gin.Context) {
	room, err := rc.Rooms.GetByNumber(c.Request.Context(), strings.TrimSpace(c.Param("roomNumber")))
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room, "room loaded")
}

// UpdateStatus handles PATCH /api/rooms/:roomId/status.
func (rc *RoomController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.BindingMessage(err), "")
		return
	}

	room, err := rc.Lifecycle.UpdateRoomStatus(c.Request.Context(), id, models.RoomStatus(strings.TrimSpace(req.Status)), c.ClientIP())
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room, "room status updated")
}

// SetLockCode handles POST /api/rooms/:roomId/smart-lock.
func (rc *RoomController) SetLockCode(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var req lockCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.BindingMessage(err), "")
		return
	}

	res, err := rc.Lifecycle.SetLockCode(c.Request.Context(), id, req.LockCode, c.ClientIP())
	if err != nil {
		respondError(c, err, lockStatus)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res, "smart lock code set")
}
