// Version command for the wick CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondq/wick/pkg/wick"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wick version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("wick", wick.Version)
	},
}
