package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Username      string
	PasswordStdin bool
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with a username and password.

The password is prompted for without echo. Use --password-stdin to read it
from the first line of standard input instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from stdin")

	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		username := opts.Username
		if username == "" && !opts.PasswordStdin {
			var err error
			if username, err = a.prompt.line("Username"); err != nil {
				return WrapExitError(ExitCommandError, "login", err)
			}
		}
		password, err := readPassword(a, opts.PasswordStdin, "Password")
		if err != nil {
			return err
		}

		u, err := viewmodel.Login(ctx, a.sess, username, password)
		if err != nil {
			// A 401 here is a credentials problem, not a missing session.
			if apiErr, ok := api.AsError(err); ok && apiErr.Code == api.CodeUnauthorized {
				return NewExitError(ExitFailure, "login failed: "+apiErr.Message())
			}
			return err
		}
		a.logger.Debug("logged in", "user", u.Username)
		return a.out.Render(u, func(w io.Writer) {
			fmt.Fprintf(w, "Logged in as %s.\n", u.Username)
		})
	})
}

func readPassword(a *app, fromStdin bool, label string) (string, error) {
	var (
		s   string
		err error
	)
	if fromStdin {
		s, err = a.prompt.secretLine()
	} else {
		s, err = a.prompt.password(label)
	}
	if err != nil {
		return "", WrapExitError(ExitCommandError, "read password", err)
	}
	return s, nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Sign out and forget the stored session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(rootOpts, cmd)
		},
	}
}

func runLogout(opts *RootOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		was := a.sess.IsAuthenticated()
		if err := a.sess.Logout(ctx); err != nil {
			return err
		}
		return a.out.Render(map[string]bool{"logged_out": was}, func(w io.Writer) {
			if was {
				fmt.Fprintln(w, "Logged out.")
			} else {
				fmt.Fprintln(w, "Not logged in.")
			}
		})
	})
}

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Fields        viewmodel.RegistrationFields
	PasswordStdin bool
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create an account and sign in.

The account type defaults to the reader role. See "pulse roles" for the
choices. The password is prompted for twice unless --password-stdin is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, cmd)
		},
	}

	f := &opts.Fields
	cmd.Flags().StringVar(&f.Username, "username", "", "username")
	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.LastName, "last-name", "", "last name")
	cmd.Flags().Int64Var(&f.Role, "role", 0, "role id (default: reader)")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from stdin")

	return cmd
}

func runRegister(opts *RegisterOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		reg := viewmodel.NewRegistration(a.svc, a.sess)
		reg.Load(ctx)

		fields := opts.Fields
		if fields.Role == 0 {
			fields.Role = defaultRole(reg.Roles)
		}

		password, err := readPassword(a, opts.PasswordStdin, "Password")
		if err != nil {
			return err
		}
		fields.Password, fields.Password2 = password, password
		if !opts.PasswordStdin {
			if fields.Password2, err = readPassword(a, false, "Repeat password"); err != nil {
				return err
			}
		}

		u, err := reg.Submit(ctx, fields)
		if err != nil {
			return err
		}
		return a.out.Render(u, func(w io.Writer) {
			fmt.Fprintf(w, "Welcome, %s. You are signed in.\n", u.DisplayName())
		})
	})
}

func defaultRole(roles []model.Role) int64 {
	for _, r := range roles {
		if r.Name == model.RoleReader {
			return r.ID
		}
	}
	return 0
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the signed-in user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(rootOpts, cmd)
		},
	}
}

func runWhoami(opts *RootOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		u := a.sess.User()
		if u == nil {
			return viewmodel.ErrLoginRequired
		}
		return a.out.Render(u, func(w io.Writer) {
			role := u.RoleName()
			if role == "" {
				role = "no role"
			}
			fmt.Fprintf(w, "%s (%s)\n", u.Username, role)
		})
	})
}
