package view

import (
	"fmt"
	"io"
	"time"

	"github.com/Dooralove/PulseNews/internal/model"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Profile renders the user's account details.
func Profile(w io.Writer, u *model.User, now time.Time) {
	if u == nil {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	fmt.Fprintf(w, "%s (%s)\n", u.Username, u.DisplayName())
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-22s %s\n", label+":", value)
		}
	}
	row("email", u.Email)
	if u.Role != nil {
		role := u.Role.DisplayName
		if role == "" {
			role = u.Role.Name
		}
		row("role", role)
	}
	if u.DateJoined != nil {
		row("joined", Ago(*u.DateJoined, now))
	}
	row("bio", u.Bio)
	row("phone", u.Phone)
	row("birth date", u.BirthDate)
	row("verified", yesNo(u.IsVerified))
	if u.EmailNotifications != nil {
		row("email notifications", yesNo(*u.EmailNotifications))
	}
	row("can manage articles", yesNo(u.CanManageArticles()))
	row("can moderate content", yesNo(u.CanModerateContent()))
}

// Activities renders the user's recent activity, newest first as served.
func Activities(w io.Writer, acts []model.Activity, now time.Time) {
	if len(acts) == 0 {
		fmt.Fprintln(w, "No recent activity.")
		return
	}
	for _, a := range acts {
		if a.Description != "" {
			fmt.Fprintf(w, "- %s: %s (%s)\n", a.Action, a.Description, Ago(a.CreatedAt, now))
			continue
		}
		fmt.Fprintf(w, "- %s (%s)\n", a.Action, Ago(a.CreatedAt, now))
	}
}

// Roles renders the selectable account roles.
func Roles(w io.Writer, roles []model.Role) {
	for _, r := range roles {
		fmt.Fprintf(w, "%d  %-8s %s", r.ID, r.Name, r.DisplayName)
		if r.Description != "" {
			fmt.Fprintf(w, ": %s", r.Description)
		}
		fmt.Fprintln(w)
	}
}
