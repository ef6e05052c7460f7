package main

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ServeCmd exposes the counters and gauges registered by
// internal/labelstore/stats on a Prometheus-scrapeable HTTP endpoint.
type ServeCmd struct {
	Addr string `default:":9090" help:"Address to listen on."`
	Path string `default:"/metrics" help:"HTTP path serving the metrics."`
}

func (c *ServeCmd) Run(logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle(c.Path, promhttp.Handler())

	srv := &http.Server{Addr: c.Addr, Handler: mux}
	logger.Info("serving metrics", zap.String("addr", c.Addr), zap.String("path", c.Path))

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
