package cli

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/config"
	"github.com/Dooralove/PulseNews/internal/service"
	"github.com/Dooralove/PulseNews/internal/session"
	"github.com/Dooralove/PulseNews/internal/store"
)

// app is the per-invocation wiring: config, session store, API client,
// services and the restored session.
type app struct {
	cfg    config.Config
	store  *store.Store
	client *api.Client
	svc    *service.Services
	sess   *session.Session
	logger *slog.Logger
	out    *OutputFormatter
	prompt *prompter
	now    func() time.Time
}

// loadConfig resolves the configuration. Flags take precedence over the
// file and environment, and are applied before validation.
func (o *RootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	return config.Load(config.Options{
		File:   o.ConfigFile,
		Getenv: o.env.Getenv,
		Override: func(cfg *config.Config) {
			if flags.Changed("api-url") {
				cfg.APIURL = o.APIURL
			}
			if flags.Changed("session-db") {
				cfg.SessionDB = o.SessionDB
			}
			if flags.Changed("format") {
				cfg.Format = o.Format
			}
		},
	})
}

// run opens the app, calls fn and reports its error. Every command that
// talks to the API goes through here.
func (o *RootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	out := o.formatter(cmd)
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return out.failCode(ErrCodeConfig, ExitCommandError, err)
	}
	out.Format = cfg.Format

	ctx := cmd.Context()
	a, err := o.open(ctx, cfg, out)
	if err != nil {
		return out.Fail(err)
	}
	defer a.close()

	return out.Fail(fn(ctx, a))
}

func (o *RootOptions) open(ctx context.Context, cfg config.Config, out *OutputFormatter) (*app, error) {
	st, err := store.Open(cfg.SessionDB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open session store", err)
	}

	a := &app{
		cfg:    cfg,
		store:  st,
		logger: o.logger,
		out:    out,
		prompt: o.prompt,
		now:    o.env.Now,
	}
	a.client = api.New(api.Options{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		Tokens:     func(ctx context.Context) string { return a.sess.AccessToken(ctx) },
		RequestIDs: o.env.RequestIDs,
		Logger:     o.logger,
	})
	a.svc = service.New(a.client, o.logger)
	a.sess = session.New(st, a.svc.Auth, o.logger)

	if err := a.sess.Init(ctx); err != nil {
		st.Close()
		return nil, err
	}
	o.logger.Debug("session restored", "state", a.sess.State(), "api", cfg.APIURL)
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close session store", "error", err)
	}
}

// parseID parses a positive numeric id argument.
func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, "invalid "+kind+" id "+strconv.Quote(s))
	}
	return id, nil
}
