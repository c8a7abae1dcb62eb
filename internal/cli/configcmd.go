package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dooralove/PulseNews/internal/config"
	"github.com/Dooralove/PulseNews/internal/store"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the client configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after merging, in order: defaults,
the config file, .env, the environment and command-line flags.

The keys held in the session database are listed with their last write
time. Their values, which include tokens, are never printed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	})
	return cmd
}

// configView is the printed configuration.
type configView struct {
	config.Config `yaml:",inline"`
	File          string       `yaml:"config_file" json:"config_file"`
	Session       []sessionKey `yaml:"session,omitempty" json:"session,omitempty"`
}

type sessionKey struct {
	Key       string    `yaml:"key" json:"key"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
}

// sessionKeys lists the stored session keys, most recent first. A missing
// database yields nothing; it is not created.
func sessionKeys(ctx context.Context, path string) ([]sessionKey, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	entries, err := st.Entries(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]sessionKey, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, sessionKey{Key: e.Key, UpdatedAt: time.Unix(e.UpdatedAt, 0).UTC()})
	}
	return keys, nil
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return out.failCode(ErrCodeConfig, ExitCommandError, err)
	}
	out.Format = cfg.Format

	file := opts.ConfigFile
	if file == "" {
		file = config.DefaultPath()
	}
	v := configView{Config: cfg, File: file}
	if v.Session, err = sessionKeys(cmd.Context(), cfg.SessionDB); err != nil {
		opts.logger.Warn("read session store", "path", cfg.SessionDB, "error", err)
	}

	return out.Fail(out.Render(v, func(w io.Writer) {
		data, err := yaml.Marshal(v)
		if err != nil {
			fmt.Fprintf(w, "%+v\n", v)
			return
		}
		_, _ = w.Write(data)
	}))
}
