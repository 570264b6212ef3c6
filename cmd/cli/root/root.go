package root

import (
	"fmt"
	"os"

	"github.com/dogoods/donation-scheduler/cmd/cli/process"
	"github.com/dogoods/donation-scheduler/cmd/cli/schedules"
	"github.com/spf13/cobra"
)

// RootCmd is the top-level donations command.
var RootCmd = &cobra.Command{
	Use:   "donations",
	Short: "DoGoods donation schedule CLI",
	Long:  "Command line interface for the DoGoods donation schedule processor API",
}

func init() {
	schedules.InitSchedules(RootCmd)
	process.InitProcess(RootCmd)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
