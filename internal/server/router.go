package server

import (
	"net/http"
	"path/filepath"

	apperrors "greenverify/internal/common/errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	if s.cfg != nil && s.cfg.Server.Mode != "" {
		gin.SetMode(s.cfg.Server.Mode)
	}

	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		s.logger.Error("handler panicked", map[string]interface{}{
			"path":  c.FullPath(),
			"panic": recovered,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Envelope{
			Success: false,
			Error:   "Unexpected error",
			Code:    "INTERNAL_ERROR",
		})
	}))

	if s.templates != "" {
		if matches, _ := filepath.Glob(s.templates); len(matches) > 0 {
			router.LoadHTMLGlob(s.templates)
			s.htmlLoaded = true
		} else {
			s.logger.Warn("no templates matched, index serves JSON", map[string]interface{}{
				"glob": s.templates,
			})
		}
	}

	router.GET("/", s.handleIndex)
	router.POST("/predict", s.handlePredict)
	router.POST("/get_initial_assessment", s.handleInitialAssessment)
	router.POST("/get_section", s.handleSection)
	router.POST("/chat", s.handleChat)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
