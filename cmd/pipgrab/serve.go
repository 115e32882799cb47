package main

import (
	"os"
	"os/signal"
	"syscall"

	pghttp "github.com/fwojciec/pipgrab/http"
)

// Run executes the serve command until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return pghttp.NewServer(deps.Service, deps.Logger).ListenAndServe(ctx, c.Addr)
}
