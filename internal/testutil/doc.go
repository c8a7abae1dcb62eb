// Package testutil holds test doubles shared across packages: a fake
// PulseNews API server, a fixed wall clock and a fixed request-id generator.
package testutil
