package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/ratiolens/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(common.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
