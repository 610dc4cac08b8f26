// Package server exposes contributor pages, impact charts and author details
// of the local store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/impact/internal/contract"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// shutdownTimeout bounds the graceful shutdown of in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server answers the contributor table, chart and author detail endpoints.
type Server struct {
	cfg      *contract.Config
	store    contract.ContributorStore
	lggr     *zap.SugaredLogger
	metrics  *Metrics
	gatherer prometheus.Gatherer

	// details coalesces concurrent identical author lookups
	details singleflight.Group

	router *gin.Engine
}

// NewServer builds the router. Metrics are registered on reg, which is also
// served on /metrics.
func NewServer(cfg *contract.Config, store contract.ContributorStore, lggr *zap.SugaredLogger, reg *prometheus.Registry) *Server {
	if lggr == nil {
		lggr = contract.NopLogger()
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		lggr:     lggr,
		metrics:  NewMetrics(reg),
		gatherer: reg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestMetrics(s.metrics, s.lggr))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/contributors/repo/:repo", s.handleContributors)
	router.GET("/impact/repo/:repo", s.handleImpact)
	router.GET("/impact/repo/:repo/chart.svg", s.handleChart)
	router.GET("/impact/repo/:repo/chart.png", s.handleChart)
	router.GET("/author/:id", s.handleAuthor)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true})))

	return router
}

// Serve listens on the configured address until ctx is done or the process
// receives SIGINT or SIGTERM.
func (s *Server) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener serves on an existing listener. It returns nil on a clean shutdown.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	g.Add(func() error {
		s.lggr.Infow("HTTP server started", "addr", lis.Addr().String())
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.lggr.Errorw("HTTP server stopped with error", "error", err)
			return err
		}
		s.lggr.Info("HTTP server stopped")
		return nil
	}, func(error) {
		s.lggr.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			_ = httpServer.Close()
		}
	})

	runCtx, cancel := context.WithCancel(ctx)
	g.Add(func() error {
		<-runCtx.Done()
		return nil
	}, func(error) {
		cancel()
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	g.Add(func() error {
		select {
		case received := <-sig:
			s.lggr.Infow("received signal, shutting down", "signal", received.String())
		case <-done:
		}
		return nil
	}, func(error) {
		signal.Stop(sig)
		close(done)
	})

	return g.Run()
}
