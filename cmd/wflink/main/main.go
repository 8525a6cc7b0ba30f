package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/wflink/cmd/wflink"
	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// zerolog drops anything below its global floor, which defaults to debug.
	// Each logger's own level decides from here on.
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	rootCmd := wflink.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, wflink.FormatError(err))
		for _, line := range wflink.FormatErrorDetails(err) {
			fmt.Fprint(os.Stderr, line)
		}
		stop()
		os.Exit(errors.ExitCode(err))
	}
}
