package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"room-booking-console/config"
	"room-booking-console/internal/mw"
	"room-booking-console/internal/service"
)

// exportCacheTTL bounds how stale a downloaded export may be.
const exportCacheTTL = 30 * time.Second

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger())

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	exportCache := cache.New(exportCacheTTL, 2*exportCacheTTL)
	caching := mw.Cache(exportCache, exportCacheTTL, mw.TenantQueryKey(service.AssetFilterKeys))

	r.GET("/", h.Home)
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	cs := r.Group("/console/:tenant")
	cs.Use(rateLimiter)
	{
		cs.GET("/rooms", h.ListRooms)
		cs.GET("/rooms/:id", h.GetRoom)
		cs.POST("/rooms", h.CreateRoom)
		cs.PUT("/rooms/:id", h.UpdateRoom)
		cs.DELETE("/rooms/:id", h.DeleteRoom)

		cs.GET("/bookings", h.ListBookings)
		cs.GET("/bookings/:id", h.GetBooking)
		cs.POST("/bookings", h.CreateBooking)
		cs.PUT("/bookings/:id", h.UpdateBooking)
		cs.DELETE("/bookings/:id", h.DeleteBooking)

		cs.GET("/assets", h.ListAssets)
		cs.GET("/assets/:id", h.GetAsset)
		cs.GET("/assets/:id/allocations", h.GetAssetAllocations)
		cs.POST("/assets", h.CreateAsset)
		cs.PUT("/assets/:id", h.UpdateAsset)
		cs.DELETE("/assets/:id", h.DeleteAsset)

		cs.GET("/exports/assets", caching, h.ExportAssets)
		cs.GET("/audit", h.ListAudit)

		cs.POST("/confirmations/:token", h.ConfirmDelete)
		cs.DELETE("/confirmations/:token", h.CancelDelete)
	}

	return r
}
