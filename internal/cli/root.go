package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/api"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	APIURL     string
	SessionDB  string

	env    Env
	logger *slog.Logger
	prompt *prompter
}

// Env is what the commands take from the process. Tests replace it.
type Env struct {
	// Getenv reads the environment; nil means the process environment
	// plus a .env file in the working directory.
	Getenv func(string) string
	Now    func() time.Time
	// TerminalFD is the descriptor used for hidden password input; -1
	// reads passwords as plain lines from the command's stdin.
	TerminalFD int
	RequestIDs api.RequestIDGenerator
}

// ProcessEnv is the Env of a normal run.
func ProcessEnv() Env {
	return Env{Now: time.Now, TerminalFD: int(os.Stdin.Fd())}
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pulse CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(ProcessEnv())
}

func newRootCommand(env Env) *cobra.Command {
	if env.Now == nil {
		env.Now = time.Now
	}
	opts := &RootOptions{env: env}

	cmd := &cobra.Command{
		Use:   "pulse",
		Short: "PulseNews - read, write and discuss news from the terminal",
		Long: `A command-line client for the PulseNews REST API.

Browse published articles, manage your own drafts, comment, react and keep
bookmarks. The session is stored locally after "pulse login".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			opts.prompt = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), opts.env.TerminalFD)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/pulse/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "API root URL")
	cmd.PersistentFlags().StringVar(&opts.SessionDB, "session-db", "", "session database path")

	// Add subcommands
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewRolesCommand(opts))
	cmd.AddCommand(NewArticlesCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewCommentsCommand(opts))
	cmd.AddCommand(NewReactCommand(opts))
	cmd.AddCommand(NewBookmarksCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// Execute runs cmd and returns the process exit code. Errors not already
// written by a command (flag and argument errors) are printed here.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if isReported(err) {
		return GetExitCode(err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Diagnostics go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
