//go:build !tinygo

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gortosdemo",
	Short: "Exercise the rtos primitives on the simulated kernel",
	Long: `gortosdemo runs a small task/queue/timer scenario against the
host port: a producer task feeds a queue, a consumer drains it, an
auto-reload timer heartbeats, and a counter tracks simulated interrupt
events.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gortosdemo: %v\n", err)
		os.Exit(1)
	}
}
