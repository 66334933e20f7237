package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rootMain(command *cobra.Command, arguments []string) {
	if rootConfiguration.version {
		fmt.Println(Version)
		return
	}

	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "synctool",
	Short: "synctool provides bidirectional filesystem synchronization primitives",
	Run:   rootMain,
}

var rootConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// version indicates whether or not version information should be shown.
	version bool
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		scanCommand,
		diffCommand,
		reconcileCommand,
		versionCommand,
	)
}
