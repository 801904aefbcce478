package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/common"
	"github.com/status-im/arcadia/metrics"
	"github.com/status-im/arcadia/params"
)

type Config struct {
	ListenAddr     string
	SessionSecret  string
	SessionTTL     time.Duration
	Footer         params.FooterConfig
	MetricsEnabled bool
}

type Server struct {
	config   Config
	server   *http.Server
	sessions *SessionManager
	logger   *zap.Logger
	listener net.Listener
}

// NewServer returns a *Server rendering one gallery controller per browser
// session.
func NewServer(config Config, factory ControllerFactory, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("server")

	sm, err := NewSessionManager(config.SessionSecret, config.SessionTTL, factory, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:   config,
		sessions: sm,
		logger:   logger,
	}
	s.server = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Router returns every route of the view.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(indexPath, handleIndex(s.sessions, s.config.Footer, s.logger)).Methods(http.MethodGet)

	actions := HandlerPatternMap{
		connectPath:    handleAction(s.sessions, connectAction, s.logger),
		initializePath: handleAction(s.sessions, initializeAction, s.logger),
		submitPath:     handleAction(s.sessions, submitAction, s.logger),
		dismissPath:    handleAction(s.sessions, dismissAction, s.logger),
	}
	for p, h := range actions {
		r.HandleFunc(p, h).Methods(http.MethodPost)
	}

	r.Handle(healthPath, metrics.HealthHandler()).Methods(http.MethodGet)
	if s.config.MetricsEnabled {
		r.Handle(metricsPath, metrics.Handler()).Methods(http.MethodGet)
	}
	return r
}

func (s *Server) listenAndServe() {
	defer common.LogOnPanic()

	err := s.server.Serve(s.listener)
	if err != http.ErrServerClosed {
		s.logger.Error("server failed unexpectedly", zap.Error(err))
		return
	}
	s.logger.Info("server stopped")
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.sessions.Start()

	s.logger.Info("serving gallery", zap.String("addr", listener.Addr().String()))
	go s.listenAndServe()
	return nil
}

// Addr returns the bound address, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.listener == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.sessions.Stop()
	return err
}
