package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/mw"
	"equipment-tracker-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.ServerConfig, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)
	invalidating := mw.Invalidate(cacheStore)

	r.Use(mw.CORS(cfg.AllowedOrigin))
	r.Use(rateLimiter)

	r.GET("/equipment", caching, handler.ListEquipment)
	r.POST("/equipment", invalidating, handler.CreateEquipment)
	r.PUT("/equipment/:id", invalidating, handler.UpdateEquipment)
	r.DELETE("/equipment/:id", invalidating, handler.DeleteEquipment)

	r.GET("/subscriptions", handler.GetSubscription)
	r.PUT("/subscriptions", handler.PutSubscription)
	r.DELETE("/subscriptions", handler.DeleteSubscription)
	r.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

	return r
}
