//go:build !tinygo

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gortos/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gortosdemo %s\n", buildinfo.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
