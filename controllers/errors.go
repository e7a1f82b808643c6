package controllers

import (
	"log"
	"net/http"
	"strconv"

	"smart-hotel/services"
	"smart-hotel/utils"

	"github.com/gin-gonic/gin"
)

type statusFunc func(*services.AppError) int

func statusByKind(e *services.AppError) int {
	switch e.Kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status picked by status. Transient causes
// are logged in full and only echoed back outside release mode.
func respondError(c *gin.Context, err error, status statusFunc) {
	appErr := services.AsAppError(err)
	code := status(appErr)

	if appErr.Kind == services.KindTransient {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		detail := ""
		if gin.Mode() != gin.ReleaseMode && appErr.Err != nil {
			detail = appErr.Err.Error()
		}
		utils.JSONError(c, code, appErr.Message, detail)
		return
	}

	log.Printf("⚠️ %s %s: %s", c.Request.Method, c.FullPath(), appErr.Code)
	utils.JSONError(c, code, appErr.Message, appErr.Code)
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name, "")
		return 0, false
	}
	return uint(id), true
}
