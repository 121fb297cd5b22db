// Spins up the chain server, serving linked lists over the Redis protocol.

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nobletooth/chain/pkg/config"
	"github.com/nobletooth/chain/pkg/port"
	"github.com/nobletooth/chain/pkg/store"
	"github.com/nobletooth/chain/pkg/utils"
)

var printVersion = flag.Bool("print_version", false, "Print the version and exit.")

func main() {
	config.InitFlags()
	utils.InitLogging()

	if *printVersion {
		slog.Info("Chain build info.", "version", utils.Version, "commit", utils.Commit, "build", utils.BuildTime)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() { // Log the signal that stops the server.
		<-ctx.Done()
		slog.Info("Received termination signal, cancelling server context.", "cause", context.Cause(ctx))
	}()

	keyspace, err := store.NewKeyspaceFromFlags()
	if err != nil {
		slog.Error("Failed to create the keyspace.", "error", err)
		os.Exit(1)
	}
	if err := port.RunRedisServer(ctx, keyspace); err != nil {
		slog.Error("Chain server stopped.", "error", err)
		os.Exit(1)
	}
}
