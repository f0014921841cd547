// Package web serves the stake pool browser over HTTP.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/config"
	"github.com/mrz1836/stakeview/internal/metrics"
	"github.com/mrz1836/stakeview/internal/service/holdings"
	"github.com/mrz1836/stakeview/internal/service/pools"
	"github.com/mrz1836/stakeview/internal/wallet"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)

//nolint:gochecknoglobals // gin mode is process-wide
var ginModeOnce sync.Once

// HoldingsProvider returns the token holdings of the connected wallet.
// Satisfied by holdings.Service.
type HoldingsProvider interface {
	Holdings(ctx context.Context) (*holdings.Result, error)
}

// HealthChecker checks the upstream RPC node. Satisfied by solana.Client.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config holds the dependencies of the web server.
type Config struct {
	Addr              string
	Cluster           chain.Cluster
	Source            pools.Source
	Metadata          pools.MetadataProvider
	Wallet            *wallet.State
	Holdings          HoldingsProvider
	Health            HealthChecker
	Metrics           *metrics.Metrics
	Logger            *config.Logger
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server exposes the HTML pages, HTML fragments and JSON API.
type Server struct {
	addr              string
	cluster           chain.Cluster
	source            pools.Source
	metadata          pools.MetadataProvider
	wallet            *wallet.State
	holdings          HoldingsProvider
	health            HealthChecker
	metrics           *metrics.Metrics
	logger            *config.Logger
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
	engine            *gin.Engine
}

// NewServer creates a new web server instance.
func NewServer(cfg *Config) *Server {
	ginModeOnce.Do(func() { gin.SetMode(gin.ReleaseMode) })

	s := &Server{
		addr:              cfg.Addr,
		cluster:           cfg.Cluster,
		source:            cfg.Source,
		metadata:          cfg.Metadata,
		wallet:            cfg.Wallet,
		holdings:          cfg.Holdings,
		health:            cfg.Health,
		metrics:           cfg.Metrics,
		logger:            cfg.Logger,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		shutdownTimeout:   cfg.ShutdownTimeout,
	}
	if s.wallet == nil {
		s.wallet = wallet.NewState()
	}
	if s.metrics == nil {
		s.metrics = metrics.Global
	}
	s.wallet.OnSync(s.metrics.RecordWalletSync)
	if s.logger == nil {
		s.logger = config.NullLogger()
	}
	if s.readHeaderTimeout <= 0 {
		s.readHeaderTimeout = defaultReadHeaderTimeout
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/fragments/pools", s.handlePoolsFragment)

	api := r.Group("/api")
	api.GET("/pools", s.handleAPIPools)
	api.GET("/pools/:key", s.handleAPIPool)
	api.GET("/wallet", s.handleGetWallet)
	api.POST("/wallet", s.handlePostWallet)
	api.GET("/metrics", s.handleMetrics)

	r.GET("/:key", s.handleDetail)
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Wallet returns the shared wallet state the server writes to.
func (s *Server) Wallet() *wallet.State {
	return s.wallet
}

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the HTTP server on ln (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	s.logger.Debug("web server listening on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	shutdownErr := server.Shutdown(shutdownCtx)
	<-errCh
	s.logger.Debug("web server stopped")
	return shutdownErr
}
