package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/draft"
	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/view"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit your account",
	}
	cmd.AddCommand(newProfileShowCommand(rootOpts))
	cmd.AddCommand(newProfileUpdateCommand(rootOpts))
	cmd.AddCommand(newProfilePasswordCommand(rootOpts))
	cmd.AddCommand(newProfileActivitiesCommand(rootOpts))
	return cmd
}

func newProfileShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show your profile",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				p := viewmodel.NewProfile(a.svc, a.sess)
				if err := p.Load(ctx); err != nil {
					return err
				}
				return a.out.Render(p.User, func(w io.Writer) {
					view.Profile(w, p.User, a.now())
				})
			})
		},
	}
}

// ProfileUpdateOptions holds flags for profile update.
type ProfileUpdateOptions struct {
	*RootOptions
	FirstName, LastName, Email string
	Bio, Phone, BirthDate      string
	Notifications              bool
	Avatar                     string
}

func newProfileUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Long: `Change profile fields. Only the flags given are sent.

An --avatar image is uploaded as multipart form data together with the
other fields.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileUpdate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Bio, "bio", "", "short biography")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.Notifications, "email-notifications", false, "receive email notifications")
	cmd.Flags().StringVar(&opts.Avatar, "avatar", "", "avatar image file")

	return cmd
}

func runProfileUpdate(opts *ProfileUpdateOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		in, err := opts.update(cmd)
		if err != nil {
			return err
		}
		u, err := viewmodel.NewProfile(a.svc, a.sess).Update(ctx, in)
		if err != nil {
			return err
		}
		return a.out.Render(u, func(w io.Writer) {
			fmt.Fprintln(w, "Profile updated.")
			view.Profile(w, u, a.now())
		})
	})
}

// update builds the patch from the flags that were set.
func (o *ProfileUpdateOptions) update(cmd *cobra.Command) (model.ProfileUpdate, error) {
	var in model.ProfileUpdate
	flags := cmd.Flags()
	set := func(name string, v string, dst **string) {
		if flags.Changed(name) {
			*dst = &v
		}
	}
	set("first-name", o.FirstName, &in.FirstName)
	set("last-name", o.LastName, &in.LastName)
	set("email", o.Email, &in.Email)
	set("bio", o.Bio, &in.Bio)
	set("phone", o.Phone, &in.Phone)
	set("birth-date", o.BirthDate, &in.BirthDate)
	if flags.Changed("email-notifications") {
		v := o.Notifications
		in.EmailNotifications = &v
	}
	if o.Avatar != "" {
		f, err := draft.ReadFile(o.Avatar)
		if err != nil {
			return in, WrapExitError(ExitCommandError, "avatar", err)
		}
		in.Avatar = f
	}
	if in == (model.ProfileUpdate{}) {
		return in, NewExitError(ExitCommandError, "nothing to update: pass at least one field flag")
	}
	return in, nil
}

// PasswordOptions holds flags for profile password.
type PasswordOptions struct {
	*RootOptions
	Stdin bool
}

func newProfilePasswordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PasswordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Long: `Change your password.

Prompts for the current password and the new one twice. With
--password-stdin the three values are read as lines from stdin.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilePassword(opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Stdin, "password-stdin", false, "read the passwords from stdin")
	return cmd
}

func runProfilePassword(opts *PasswordOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		if !a.sess.IsAuthenticated() {
			return viewmodel.ErrLoginRequired
		}
		var req model.PasswordChange
		var err error
		if req.OldPassword, err = readPassword(a, opts.Stdin, "Current password"); err != nil {
			return err
		}
		if req.NewPassword, err = readPassword(a, opts.Stdin, "New password"); err != nil {
			return err
		}
		if req.NewPassword2, err = readPassword(a, opts.Stdin, "Repeat new password"); err != nil {
			return err
		}
		if err := viewmodel.NewProfile(a.svc, a.sess).ChangePassword(ctx, req); err != nil {
			return err
		}
		return a.out.Render(map[string]bool{"changed": true}, func(w io.Writer) {
			fmt.Fprintln(w, "Password changed.")
		})
	})
}

func newProfileActivitiesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "activities",
		Short:         "Show your recent activity",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				p := viewmodel.NewProfile(a.svc, a.sess)
				if err := p.LoadActivities(ctx); err != nil {
					return err
				}
				return a.out.Render(p.Activities, func(w io.Writer) {
					view.Activities(w, p.Activities, a.now())
				})
			})
		},
	}
}
