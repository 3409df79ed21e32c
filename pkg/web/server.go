// Package web serves the capacity dashboard: the HTML report at the root,
// a health endpoint and Prometheus metrics.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/finaspirants/sprintcap/pkg/core/services"
	"github.com/finaspirants/sprintcap/pkg/metrics"
	"github.com/finaspirants/sprintcap/pkg/report"
)

// AnalysisFunc runs a fresh capacity analysis. The dashboard re-reads the
// spreadsheet on every page load so edits show up without a restart.
type AnalysisFunc func(ctx context.Context) (*services.AnalysisResult, error)

// Server is the dashboard HTTP server.
type Server struct {
	runAnalysis AnalysisFunc
	opts        report.Options
	logger      *zap.Logger
	httpServer  *http.Server
}

// NewServer builds the dashboard server listening on addr.
func NewServer(addr string, runAnalysis AnalysisFunc, opts report.Options, logger *zap.Logger) *Server {
	s := &Server{
		runAnalysis: runAnalysis,
		opts:        opts,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleReport)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until the context is cancelled or
// the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	result, err := s.runAnalysis(r.Context())
	metrics.AnalysisDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysisRunsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Analysis failed", zap.Error(err))
		http.Error(w, analysisErrorMessage(err), analysisErrorStatus(err))
		return
	}
	metrics.AnalysisRunsTotal.WithLabelValues("success").Inc()
	metrics.ObserveResult(result)

	html, err := report.HTML(result.Capacities, result.GeneratedAt, s.opts)
	if err != nil {
		s.logger.Error("Report rendering failed", zap.Error(err))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func analysisErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSourceMissing), errors.Is(err, services.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, services.ErrMalformedSource):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func analysisErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrSourceMissing):
		return "capacity spreadsheet not found"
	case errors.Is(err, services.ErrNoData):
		return "no employee data in spreadsheet"
	case errors.Is(err, services.ErrMalformedSource):
		return "capacity spreadsheet could not be read"
	default:
		return "analysis failed"
	}
}
