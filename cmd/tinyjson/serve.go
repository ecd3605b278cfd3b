package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"

	"github.com/xdg-go/tinyjson/internal/server"
)

type serveCommand struct {
	cfg      server.Config
	logLevel int
}

func addServeCommand(app *kingpin.Application) {
	cmd := &serveCommand{}
	c := app.Command("serve", "Serve the config document and a static web root over HTTP and HTTPS.").Action(cmd.run)
	c.Flag("web.root", "Directory to serve static files from.").Short('d').Envar("TINYJSON_WEB_ROOT").Default("./ui").StringVar(&cmd.cfg.WebRoot)
	c.Flag("http.addr", "HTTP listen address.").Short('h').Envar("TINYJSON_HTTP_ADDR").Default(":8000").StringVar(&cmd.cfg.HTTPAddr)
	c.Flag("https.addr", "HTTPS listen address; empty disables HTTPS.").Short('s').Envar("TINYJSON_HTTPS_ADDR").Default(":8443").StringVar(&cmd.cfg.HTTPSAddr)
	c.Flag("tls.cert", "TLS certificate PEM file.").Envar("TINYJSON_TLS_CERT").Default("server.pem").StringVar(&cmd.cfg.TLSCert)
	c.Flag("tls.key", "TLS key PEM file.").Envar("TINYJSON_TLS_KEY").Default("server.pem").StringVar(&cmd.cfg.TLSKey)
	c.Flag("config.file", "JSON config document served at /config.").Envar("TINYJSON_CONFIG_FILE").Default("config.json").StringVar(&cmd.cfg.ConfigFile)
	c.Flag("config.max-bytes", "Maximum size of a POSTed config document.").Envar("TINYJSON_CONFIG_MAX_BYTES").Default("1048576").Int64Var(&cmd.cfg.MaxBodyBytes)
	c.Flag("log.level", "Log level from 0 (none) to 4 (debug).").Short('v').Envar("TINYJSON_LOG_LEVEL").Default("2").IntVar(&cmd.logLevel)
}

func (cmd *serveCommand) run(_ *kingpin.ParseContext) error {
	logger, err := newLogger(cmd.logLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versioncollector.NewCollector("tinyjson"),
	)

	level.Info(logger).Log("msg", "starting tinyjson", "version", version.Info(), "build_context", version.BuildContext())
	return server.New(cmd.cfg, logger, reg).Run(context.Background())
}

// newLogger maps the numeric levels 0 to 4 onto a logfmt logger.
func newLogger(lvl int) (log.Logger, error) {
	var opt level.Option
	switch lvl {
	case 0:
		opt = level.AllowNone()
	case 1:
		opt = level.AllowError()
	case 2:
		opt = level.AllowInfo()
	case 3, 4:
		opt = level.AllowDebug()
	default:
		return nil, fmt.Errorf("invalid log level %d, must be 0 to 4", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}
