package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/olahol/melody"

	"smart-hotel/config"
	"smart-hotel/controllers"
	"smart-hotel/middleware"
	"smart-hotel/services"
)

// RegisterBindings installs the idcard, cnmobile and lockcode tags on gin's
// validator so request structs can use them in `binding` tags.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return services.RegisterValidations(v)
}

// SetupRouter wires the controllers under /api and mounts /health and /ws.
func SetupRouter(
	gc *controllers.GuestController,
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	sc *controllers.SmartLockController,
	ws *melody.Melody,
	cfg config.Config,
) (*gin.Engine, error) {
	if err := RegisterBindings(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	origins := cfg.Origins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if ws != nil {
		r.GET("/ws", func(c *gin.Context) {
			if err := ws.HandleRequest(c.Writer, c.Request); err != nil {
				c.Error(err)
			}
		})
	}

	api := r.Group("/api", middleware.Timeout(cfg.RequestTimeout))
	{
		guests := api.Group("/guests")
		{
			guests.POST("/register", gc.Register)
			// static segment before /:guestId
			guests.GET("/search/id-card/:idCard", gc.SearchByIDCard)
			guests.GET("/:guestId", gc.GetByID)
			guests.GET("/:guestId/bookings", gc.Bookings)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.List)
			bookings.GET("/current", bc.Current)
			bookings.GET("/guest/:idCard", bc.ByIDCard)
			bookings.POST("/checkout", bc.Checkout)
			bookings.PATCH("/:bookingId/cancel", bc.Cancel)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.List)
			rooms.GET("/available", rc.Available)
			rooms.GET("/:roomNumber", rc.GetByNumber)
			rooms.PATCH("/:roomId/status", rc.UpdateStatus)
			rooms.POST("/:roomId/smart-lock", rc.SetLockCode)
		}

		lock := api.Group("/smart-lock")
		{
			lock.POST("/verify", sc.Verify)
			lock.POST("/reset/:roomNumber", sc.Reset)
			lock.GET("/status", sc.StatusAll)
			lock.GET("/status/:roomNumber", sc.Status)
			lock.GET("/operations/:roomNumber", sc.Operations)
		}

		auth := api.Group("/auth")
		{
			auth.GET("/status", controllers.SystemStatus)
		}
	}

	return r, nil
}
