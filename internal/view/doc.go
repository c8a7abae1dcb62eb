// Package view renders client state as plain text for a terminal.
//
// Renderers write to an io.Writer and take the current time explicitly so
// relative timestamps ("2 hours ago") are reproducible.
package view
