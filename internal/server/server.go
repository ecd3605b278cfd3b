// Package server serves JSON config documents over HTTP, parsed and
// re-serialized by tinyjson, next to a static web root.
package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/atomic"
)

const shutdownTimeout = 5 * time.Second

// Config holds the server settings.  An empty HTTPSAddr disables TLS.
type Config struct {
	WebRoot      string
	HTTPAddr     string
	HTTPSAddr    string
	TLSCert      string
	TLSKey       string
	ConfigFile   string
	MaxBodyBytes int64
}

// Server routes config, stats, metrics and static file requests.
type Server struct {
	cfg     Config
	logger  log.Logger
	metrics *metrics
	conns   *connTracker
	handler http.Handler

	requests    atomic.Uint64
	bytesServed atomic.Uint64
}

// New builds a Server.  Metrics are registered with reg and served from it.
func New(cfg Config, logger log.Logger, reg *prometheus.Registry) *Server {
	m := newMetrics(reg)
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		conns:   newConnTracker(m),
	}

	r := mux.NewRouter()
	r.Use(s.instrument)
	r.HandleFunc("/config", s.getConfig).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/config", s.postConfig).Methods(http.MethodPost)
	r.HandleFunc("/api/stats", s.stats).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.PathPrefix("/").Handler(s.static())
	s.handler = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured addresses and serves until ctx is done or
// the process receives SIGINT or SIGTERM.  Either is a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	ln, err := net.Listen("tcp", s.cfg.HTTPAddr)
	if err != nil {
		return errors.Wrapf(err, "cannot listen on %s", s.cfg.HTTPAddr)
	}
	s.addServer(&g, "http", ln)

	if s.cfg.HTTPSAddr != "" {
		tlsLn, err := s.listenTLS()
		if err != nil {
			ln.Close()
			s.conns.removeListener(ln)
			return err
		}
		s.addServer(&g, "https", tlsLn)
	}

	err = g.Run()
	if errors.Is(err, run.ErrSignal) || errors.Is(err, context.Canceled) {
		level.Info(s.logger).Log("msg", "shutting down", "reason", err)
		return nil
	}
	return err
}

func (s *Server) listenTLS() (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(s.cfg.TLSCert, s.cfg.TLSKey)
	if err != nil {
		return nil, errors.Wrap(err, "error loading TLS certificate")
	}
	ln, err := net.Listen("tcp", s.cfg.HTTPSAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot listen on %s", s.cfg.HTTPSAddr)
	}
	return tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

func (s *Server) addServer(g *run.Group, name string, ln net.Listener) {
	srv := &http.Server{
		Handler:           s.handler,
		ConnState:         s.conns.connState,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.conns.addListener(ln)
	g.Add(func() error {
		level.Info(s.logger).Log("msg", "listening", "server", name, "addr", ln.Addr())
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "%s server failed", name)
	}, func(error) {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			level.Warn(s.logger).Log("msg", "error shutting down", "server", name, "err", err)
		}
		s.conns.removeListener(ln)
	})
}
