package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/bucketlist/internal/cli"
	"github.com/idilsaglam/bucketlist/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCmd().ExecuteContext(ctx)
	code := cli.ExitCode(err)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		if code == 2 {
			ui.Hint(os.Stderr, "Run `bucketlist --help` for usage.")
		}
	}
	stop()
	os.Exit(code)
}
