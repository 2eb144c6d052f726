package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.NewApp(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
