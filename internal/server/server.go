package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"DivergenceSentinel/internal/calculator"
	"DivergenceSentinel/internal/config"
	"DivergenceSentinel/internal/model"
	"DivergenceSentinel/internal/report"
	"DivergenceSentinel/internal/strategy"

	"github.com/gin-gonic/gin"
)

// Server exposes analysis output over HTTP.
type Server struct {
	Analyzer *strategy.Analyzer
	Settings *config.Settings
	DataDir  string // served under /data when set
	engine   *gin.Engine
}

// New builds the gin engine and registers every route.
func New(an *strategy.Analyzer, st *config.Settings, dataDir string) *Server {
	s := &Server{Analyzer: an, Settings: st, DataDir: dataDir}

	r := gin.New()
	r.Use(RequestID(), AccessLog(), gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/config", s.getConfig)
	api.GET("/pairs", s.pairs)
	api.GET("/pairs/:a/:b", s.pair)
	r.GET("/chart", s.chart)
	if dataDir != "" {
		r.Static("/data", dataDir)
	}

	s.engine = r
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] http server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		log.Println("[INFO] http server stopped")
		return nil
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

func (s *Server) getConfig(c *gin.Context) {
	snap := s.Settings.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"analysis":         snap,
		"effective_window": calculator.EffectiveWindow(snap.Lookback, snap.Window),
		"lookback_choices": s.Settings.LookbackChoices(),
		"policies":         model.Policies,
		"pairs":            s.Analyzer.Pairs,
	})
}

// snapshot applies the lookback, policy and window query parameters.
func (s *Server) snapshot(c *gin.Context) (model.AnalysisConfig, bool) {
	cfg, err := s.Settings.Override(c.Query("lookback"), c.Query("policy"), c.Query("window"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return cfg, false
	}
	return cfg, true
}

func (s *Server) pairs(c *gin.Context) {
	cfg, ok := s.snapshot(c)
	if !ok {
		return
	}
	reports := s.Analyzer.Run(c.Request.Context(), cfg)
	c.JSON(http.StatusOK, gin.H{"config": cfg, "reports": reports})
}

func (s *Server) pair(c *gin.Context) {
	cfg, ok := s.snapshot(c)
	if !ok {
		return
	}
	r := s.Analyzer.RunPair(c.Request.Context(), cfg, strategy.Pair{A: c.Param("a"), B: c.Param("b")})
	c.JSON(http.StatusOK, r)
}

func (s *Server) chart(c *gin.Context) {
	cfg, ok := s.snapshot(c)
	if !ok {
		return
	}
	reports := s.Analyzer.Run(c.Request.Context(), cfg)
	var buf bytes.Buffer
	if err := report.RenderCharts(&buf, reports); err != nil {
		log.Printf("[ERROR] render charts: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
