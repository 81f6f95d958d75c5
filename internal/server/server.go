// Package server exposes the prediction and advisory API over HTTP.
package server

import (
	"greenverify/internal/audit"
	"greenverify/internal/common/config"
	apperrors "greenverify/internal/common/errors"
	"greenverify/internal/common/logger"
	"greenverify/internal/common/observability"
	"greenverify/internal/narrative"
	"greenverify/internal/predictor"
	"greenverify/internal/session"
)

// Options carries the wired dependencies of the HTTP layer. Pipeline is nil
// when the artifact bundle failed to load; the server then runs degraded and
// /predict reports "Model not available". Audit is nil unless PostgreSQL is
// configured.
type Options struct {
	Config        *config.Config
	Logger        logger.Logger
	Pipeline      *predictor.Pipeline
	Sessions      session.Store
	Narrator      *narrative.Generator
	Audit         *audit.Store
	Observability *observability.Observability
	TemplatesGlob string
}

type Server struct {
	cfg       *config.Config
	logger    logger.Logger
	pipeline  *predictor.Pipeline
	sessions  session.Store
	narrator  *narrative.Generator
	audit     *audit.Store
	errs      *apperrors.ErrorHandler
	obs       *observability.Observability
	templates string

	// htmlLoaded is set by Router when the template glob matched files;
	// handleIndex must not call c.HTML without it.
	htmlLoaded bool
}

func New(opts Options) *Server {
	log := opts.Logger.WithFields(map[string]interface{}{"component": "server"})
	return &Server{
		cfg:       opts.Config,
		logger:    log,
		pipeline:  opts.Pipeline,
		sessions:  opts.Sessions,
		narrator:  opts.Narrator,
		audit:     opts.Audit,
		errs:      apperrors.NewErrorHandler(log),
		obs:       opts.Observability,
		templates: opts.TemplatesGlob,
	}
}

// ModelLoaded reports whether inference is available.
func (s *Server) ModelLoaded() bool {
	return s.pipeline != nil
}
