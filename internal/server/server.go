// Package server is the HTTP route layer: it translates JSON requests into
// calls on the relevance and gamification engines and maps their error
// taxonomy onto status codes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobquest/internal/game"
	"jobquest/internal/letters"
	"jobquest/internal/store"
)

// Server hosts the JSON API.
type Server struct {
	router  *gin.Engine
	store   *store.Store
	game    *game.Engine
	letters *letters.Service
	logger  *zap.Logger
}

// New wires the routes. All dependencies are required except letters, which
// may be nil when letter generation is disabled.
func New(s *store.Store, g *game.Engine, l *letters.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	srv := &Server{
		router:  router,
		store:   s,
		game:    g,
		letters: l,
		logger:  logger,
	}

	router.GET("/healthcheck", srv.healthcheck)

	api := router.Group("/api")
	{
		api.POST("/relevance", srv.computeRelevance)
		api.POST("/letters", srv.generateLetter)
		api.POST("/vacancies", srv.cacheVacancy)
		api.GET("/vacancies", srv.listVacancies)

		users := api.Group("/users/:id")
		{
			users.POST("/apply", srv.apply)
			users.POST("/actions", srv.recordAction)
			users.GET("/stats", srv.getStats)
			users.GET("/forecast", srv.getForecast)
			users.POST("/resumes", srv.cacheResume)
			users.GET("/resumes", srv.listResumes)
			users.POST("/filters", srv.saveFilter)
			users.GET("/filters", srv.listFilters)
			users.POST("/applications/:appId/status", srv.updateApplicationStatus)
		}
	}

	return srv
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
