package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/always-cache/assets"
	"github.com/always-cache/assets/pkg/metrics"
)

var (
	// CLI flags
	configFlag         string
	portFlag           int
	dirFlag            string
	dbFilenameFlag     string
	prefixFlag         string
	metricsFlag        string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFlag, "config", "", "YAML config file")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&dirFlag, "dir", "", "Directory to serve")
	flag.StringVar(&dbFilenameFlag, "db", "", "Asset bundle DB file to serve (see asset-pack)")
	flag.StringVar(&prefixFlag, "prefix", "", "Path prefix to serve the assets under, e.g. /static")
	flag.StringVar(&metricsFlag, "metrics", "/metrics", "Path to serve prometheus metrics at (empty to disable)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	// environment may come from a .env file in the working directory
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Cannot load .env: %v\n", err)
		os.Exit(1)
	}

	config := defaultConfig()
	var configErr error
	if configFlag != "" {
		config, configErr = getConfig(configFlag)
	}
	if configErr == nil {
		configErr = applyEnv(&config, os.Getenv)
	}
	applyFlags(&config)

	// set log level
	logLevel := zerolog.DebugLevel
	if config.Trace {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if config.LogFile != "" {
		if logFileOutput, err := os.OpenFile(config.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	if configErr != nil {
		log.Fatal().Err(configErr).Str("file", configFlag).Msg("Cannot read config")
	}
	if err := config.validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(logRequest))
	r.Use(m.Middleware)

	for _, mount := range config.Mounts {
		table, err := loadMount(mount)
		if err != nil {
			log.Fatal().Err(err).Str("prefix", mount.Prefix).Msg("Cannot load assets")
		}
		if table.IsEmpty() {
			log.Warn().Str("prefix", mount.Prefix).Msg("No assets to serve")
		}
		assets.Mount(r, mount.Prefix, table, assets.Config{Logger: &log.Logger})
		m.AssetsLoaded.Add(float64(table.Len()))
		log.Info().
			Str("prefix", normalizePrefix(mount.Prefix)).
			Str("dir", mount.Dir).
			Str("db", mount.DB).
			Int("files", table.Len()).
			Msg("Mounted assets")
	}
	if config.Metrics != "" {
		r.Handle(config.Metrics, m.Handler())
	}

	log.Info().Msgf("Serving assets on port %v", config.Port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", config.Port), r)

	if err != nil {
		panic(err)
	}
}

// applyFlags overrides config with the flags given on the command line.
func applyFlags(config *Config) {
	var dirSet, dbSet bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			config.Port = portFlag
		case "metrics":
			config.Metrics = metricsFlag
		case "vv":
			config.Trace = verbosityTraceFlag
		case "log-file":
			config.LogFile = logFilenameFlag
		case "dir":
			dirSet = true
		case "db":
			dbSet = true
		}
	})
	if dirSet || dbSet {
		config.Mounts = mountsFrom(prefixFlag, dirFlag, dbFilenameFlag)
	}
}
