package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tengjizhang/trs/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes one trs invocation and maps its error to an exit status.
func run(ctx context.Context, args []string) int {
	err := cli.ExecuteContext(ctx, args)
	cli.PrintError(err)
	return cli.ErrorExitCode(err)
}
