package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synctool/synctool/cmd"
)

// Version is the release version of synctool. It's a variable (rather than a
// constant) so that it can be overridden via linker flags at build time.
var Version = "0.1.0-dev"

func versionMain(command *cobra.Command, arguments []string) error {
	fmt.Println(Version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   cmd.Mainify(versionMain),
}

var versionConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	flags := versionCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&versionConfiguration.help, "help", "h", false, "Show help information")
}
