package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhomar/paraglide"
)

// Run executes the ui command. It serves until interrupted.
func (c *UICmd) Run(deps *Dependencies) error {
	if err := deps.Server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", deps.Server.URL())

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(deps.Stdout, "Shutting down")
	return deps.Server.Close()
}
