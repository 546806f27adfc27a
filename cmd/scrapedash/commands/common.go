package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"scrapedash/internal/apify"
	"scrapedash/internal/config"
	"scrapedash/internal/logger"
	"scrapedash/internal/service"
	"scrapedash/internal/watch"
)

// AppContext wires the pieces every command needs.
type AppContext struct {
	Config *config.Config
	Logger *slog.Logger
	Client *apify.Client
	Jobs   *service.JobService
}

// NewAppContext loads configuration and builds the client and service.
// Logs go to logOut so that command output on stdout stays clean.
func NewAppContext(envFile string, logOut io.Writer) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	if logOut != nil {
		logCfg.Output = logOut
	}
	log := logger.New(logCfg)

	client := apify.NewClient(cfg.Apify, log)
	if !client.HasCredential() {
		log.Warn("APIFY_TOKEN is not set, platform calls will be skipped")
	}

	return &AppContext{
		Config: cfg,
		Logger: log,
		Client: client,
		Jobs:   service.NewJobService(client, log, cfg.PreviewLimit),
	}, nil
}

// newCLIContext is NewAppContext for interactive commands: logs on stderr.
func newCLIContext(envFile string) (*AppContext, error) {
	return NewAppContext(envFile, os.Stderr)
}

func (ac *AppContext) Watcher() *watch.Watcher {
	return watch.NewWatcher(ac.Jobs, ac.Config.WatchInterval, ac.Logger)
}
