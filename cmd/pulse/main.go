// Command pulse is a terminal client for the PulseNews API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dooralove/PulseNews/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCommand())
	stop()
	os.Exit(code)
}
