package controllers

import (
	"errors"
	"net/http"

	"smart-hotel/services"
	"smart-hotel/utils"

	"github.com/gin-gonic/gin"
)

type SmartLockController struct {
	Lifecycle Lifecycle
	Rooms     RoomReader
}

func NewSmartLockController(lifecycle Lifecycle, rooms RoomReader) *SmartLockController {
	return &SmartLockController{Lifecycle: lifecycle, Rooms: rooms}
}

func lockStatus(e *services.AppError) int {
	switch {
	case errors.Is(e, services.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(e, services.ErrRoomNotOccupied), e.Kind == services.KindValidation:
		return http.StatusBadRequest
	case errors.Is(e, services.ErrInvalidLockCode):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Verify handles POST /api/smart-lock/verify.
func (sc *SmartLockController) Verify(c *gin.Context) {
	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "please provide room number and smart lock code", "")
		return
	}

	res, err := sc.Lifecycle.VerifyLockCode(c.Request.Context(), req.RoomNumber, req.LockCode, c.ClientIP())
	if err != nil {
		respondError(c, err, lockStatus)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res, "smart lock code verified")
}

// Reset handles POST /api/smart-lock/reset/:roomNumber.
func (sc *SmartLockController) Reset(c *gin.Context) {
	res, err := sc.Lifecycle.ResetLockCode(c.Request.Context(), c.Param("roomNumber"), c.ClientIP())
	if err != nil {
		respondError(c, err, lockStatus)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res, "smart lock code reset")
}

// StatusAll handles GET /api/smart-lock/status.
func (sc *SmartLockController) StatusAll(c *gin.Context) {
	items, err := sc.Rooms.LockStatusAll(c.Request.Context())
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items, "smart lock status loaded")
}

// Status handles GET /api/smart-lock/status/:roomNumber.
func (sc *SmartLockController) Status(c *gin.Context) {
	st, err := sc.Rooms.LockStatus(c.Request.Context(), c.Param("roomNumber"))
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st, "smart lock status loaded")
}

// Operations handles GET /api/smart-lock/operations/:roomNumber.
func (sc *SmartLockController) Operations(c *gin.Context) {
	ops, err := sc.Rooms.LockOperations(c.Request.Context(), c.Param("roomNumber"))
	if err != nil {
		respondError(c, err, statusByKind)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ops, "smart lock operations loaded")
}
