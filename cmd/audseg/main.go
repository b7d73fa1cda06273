// SPDX-License-Identifier: EPL-2.0

// Command audseg trims audio clips, exports segments as WAV and submits
// them to a sentiment analysis gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "audseg:", err)
		stop()
		os.Exit(1)
	}
}
