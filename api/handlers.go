package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gcbaptista/inverted-index/internal/metrics"
	"github.com/gcbaptista/inverted-index/services"
)

const defaultMaxRequestBytes = 1 << 20

// API holds dependencies for API handlers, primarily the index manager.
type API struct {
	engine services.IndexManager
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager) *API {
	return &API{engine: engine}
}

// Options configures the routes installed by SetupRoutes.
type Options struct {
	// MaxRequestBytes caps request bodies; 0 uses 1 MiB.
	MaxRequestBytes int64
	// CreateRatePerSecond limits POST /indexes; 0 disables the limit.
	CreateRatePerSecond float64
	CreateBurst         int
	// Metrics enables request metrics and the metrics endpoint when set.
	Metrics     *metrics.Metrics
	MetricsPath string
}

// SetupRoutes defines all the API routes for the inverted index service.
func SetupRoutes(router *gin.Engine, engine services.IndexManager, opts Options) {
	apiHandler := NewAPI(engine)

	maxBytes := opts.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxRequestBytes
	}

	router.Use(RequestIDMiddleware(), LoggingMiddleware(), CORSMiddleware())
	if opts.Metrics != nil {
		router.Use(MetricsMiddleware(opts.Metrics))
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}
	router.Use(RequestSizeLimitMiddleware(maxBytes))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	createHandlers := []gin.HandlerFunc{apiHandler.CreateIndexHandler}
	if opts.CreateRatePerSecond > 0 {
		burst := opts.CreateBurst
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(opts.CreateRatePerSecond), burst)
		createHandlers = append([]gin.HandlerFunc{RateLimitMiddleware(limiter)}, createHandlers...)
	}

	// Index management routes
	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", createHandlers...)                // Build an index from a location
		indexRoutes.GET("", apiHandler.ListIndexesHandler)     // Summaries of all indexes
		indexRoutes.GET("/detail", apiHandler.GetIndexHandler) // Full index for ?location=
		indexRoutes.DELETE("", apiHandler.DeleteIndexHandler)  // Remove the index for ?location=
	}

	// Background job routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)       // Jobs, optionally for ?location=
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler) // Job status by ID
	}

	router.POST("/search", apiHandler.SearchHandler)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "inverted-index",
		"indexes":   len(api.engine.ListIndexes()),
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
