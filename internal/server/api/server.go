// Package api serves the tracker's JSON API over HTTP with gin.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// HealthFunc reports whether the server's dependencies are reachable.
type HealthFunc func(ctx context.Context) error

type Server struct {
	address   string
	svc       Services
	health    HealthFunc
	logger    logging.Logger
	jwtSecret []byte
	engine    *gin.Engine
}

func NewServer(a string, l logging.Logger, svc Services, health HealthFunc, secretKey string) *Server {
	s := &Server{
		address:   a,
		svc:       svc,
		health:    health,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/healthz", s.healthz)

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/refresh", s.refresh)

	p := api.Group("", s.accessTokenMiddleware(), idParamMiddleware())

	p.GET("/emails", s.listEmails)
	p.POST("/emails", s.createEmail)
	p.PUT("/emails/:id", s.updateEmail)
	p.DELETE("/emails/:id", s.deleteEmail)
	p.POST("/emails/:id/primary", s.setPrimaryEmail)

	p.GET("/companies", s.listCompanies)
	p.POST("/companies", s.createCompany)
	p.GET("/companies/:id", s.getCompany)
	p.PUT("/companies/:id", s.updateCompany)
	p.DELETE("/companies/:id", s.deleteCompany)
	p.GET("/companies/:id/positions", s.listCompanyPositions)

	p.POST("/positions", s.createPosition)
	p.GET("/positions/:id", s.getPosition)
	p.PUT("/positions/:id", s.updatePosition)

	p.GET("/documents", s.listDocuments)
	p.POST("/documents", s.uploadDocument)
	p.PUT("/documents/:id", s.updateDocument)
	p.DELETE("/documents/:id", s.deleteDocument)
	p.GET("/documents/:id/download", s.downloadDocument)

	p.GET("/applications", s.listApplications)
	p.POST("/applications", s.createApplication)
	p.POST("/applications/with-company", s.createApplicationWithCompany)
	p.GET("/applications/:id", s.getApplication)
	p.PUT("/applications/:id", s.updateApplication)
	p.DELETE("/applications/:id", s.deleteApplication)
	p.GET("/applications/:id/email-defaults", s.emailDefaults)
	p.POST("/applications/:id/send-email", s.sendEmail)
	p.POST("/applications/:id/send-hr-email", s.sendHREmail)

	p.GET("/applications/:id/interviews", s.listInterviews)
	p.POST("/applications/:id/interviews", s.addInterview)
	p.PUT("/applications/:id/interviews/:round", s.updateInterview)
	p.DELETE("/applications/:id/interviews/:round", s.deleteInterview)
	p.POST("/applications/:id/interviews/:round/remind", s.remindInterview)

	p.GET("/applications/:id/notes", s.listNotes)
	p.POST("/applications/:id/notes", s.addNote)
	p.PUT("/notes/:id", s.updateNote)
	p.DELETE("/notes/:id", s.deleteNote)

	p.GET("/dashboard", s.dashboard)
	p.GET("/statistics", s.statistics)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
