package cmd

import (
	"time"

	"github.com/wardenhq/wardenctl/internal/access"
	"github.com/wardenhq/wardenctl/internal/config"
	"github.com/wardenhq/wardenctl/internal/log"
	"github.com/wardenhq/wardenctl/internal/platform"
	"github.com/wardenhq/wardenctl/internal/session"
)

// runtime wires the client stack for a single command invocation: config,
// logger, platform client, session authority and permission evaluator.
type runtime struct {
	cfg       config.Config
	logger    *log.Logger
	client    *platform.Client
	authority *session.Authority
	evaluator *access.Evaluator
}

// newRuntime builds the stack and restores any persisted session.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := log.DefaultConfig()
	if cfg.Logging.Level != "" {
		logCfg.Level = log.ParseLevel(cfg.Logging.Level)
	}
	if cfg.Logging.Format != "" {
		logCfg.Format = log.ParseFormat(cfg.Logging.Format)
	}
	logger := log.New(logCfg)

	client := platform.NewClient(cfg.APIURL)
	client.Tenant = cfg.Tenant
	if cfg.TimeoutSeconds > 0 {
		client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	store := session.NewFileStore(dir)

	authority := session.NewAuthority(client, store, client, logger)
	authority.Initialize()

	return &runtime{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		authority: authority,
		evaluator: access.NewEvaluator(authority),
	}, nil
}

// close releases the authority's expiry subscription.
func (r *runtime) close() {
	r.authority.Dispose()
}
