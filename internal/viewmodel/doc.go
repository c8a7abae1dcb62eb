// Package viewmodel holds the state and behaviour behind each client view:
// the home feed, article detail, the author's own articles, the article
// form, bookmarks, profile and registration.
//
// View models call the services, keep the loaded records in memory and
// enforce the client-side permission checks. They never render; the view
// package does.
package viewmodel
