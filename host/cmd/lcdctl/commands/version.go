package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lcdlink/protocol"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the lcdctl and protocol versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lcdctl %s (protocol %s)", Version, protocol.Version)
		if BuildTime != "" {
			fmt.Printf(" built %s", BuildTime)
		}
		fmt.Println()
	},
}
