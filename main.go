package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/claudeup/claudeup/cmd"
)

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		// Partially applied steps are left as-is; rerunning is safe
		// because every step is idempotent.
		fmt.Fprintln(os.Stderr, "\nOperation cancelled.")
		os.Exit(1)
	}()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "claudeup: unexpected error: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
