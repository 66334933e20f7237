package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/synctool/synctool/cmd"
	"github.com/synctool/synctool/pkg/hashing"
	"github.com/synctool/synctool/sync"
)

// describeChange renders a single Change as a one-line summary.
func describeChange(c sync.Change) string {
	path := c.Path
	if path == "" {
		path = "(root)"
	}
	switch {
	case c.IsCreation():
		return color.GreenString("+ %s", path)
	case c.IsDeletion():
		return color.RedString("- %s", path)
	default:
		return color.YellowString("~ %s", path)
	}
}

func diffMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errors.New("exactly two root paths must be specified (base and target)")
	}
	base, target := arguments[0], arguments[1]

	algorithm := hashing.AlgorithmSHA1
	if diffConfiguration.hash != "" {
		if err := algorithm.UnmarshalText([]byte(diffConfiguration.hash)); err != nil {
			return errors.Wrap(err, "invalid hash algorithm")
		}
	}

	baseEntry, _, err := sync.Scan(base, algorithm.Factory(0)(), sync.NewCache(), diffConfiguration.ignores)
	if err != nil {
		return errors.Wrap(err, "unable to scan base root")
	}
	targetEntry, _, err := sync.Scan(target, algorithm.Factory(0)(), sync.NewCache(), diffConfiguration.ignores)
	if err != nil {
		return errors.Wrap(err, "unable to scan target root")
	}

	changes := sync.Diff(baseEntry, targetEntry)
	if len(changes) == 0 {
		fmt.Println("No differences")
		return nil
	}
	for _, c := range changes {
		fmt.Println(describeChange(c))
	}
	fmt.Println(len(changes), "change(s)")

	return nil
}

var diffCommand = &cobra.Command{
	Use:   "diff <base> <target>",
	Short: "Scan and diff two filesystem roots",
	Run:   cmd.Mainify(diffMain),
}

var diffConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// hash specifies the hash algorithm to use when scanning.
	hash string
	// ignores specifies ignore patterns to apply during scanning.
	ignores []string
}

func init() {
	flags := diffCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&diffConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&diffConfiguration.hash, "hash", "sha1", "Hash algorithm to use (sha1, blake2b)")
	flags.StringSliceVar(&diffConfiguration.ignores, "ignore", nil, "Ignore pattern (may be specified multiple times)")
}
