package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/synctool/synctool/cmd"
	"github.com/synctool/synctool/pkg/hashing"
	"github.com/synctool/synctool/pkg/logging"
	"github.com/synctool/synctool/sync"
)

func reconcileMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 3 {
		return errors.New("exactly three root paths must be specified (ancestor, alpha, beta)")
	}
	ancestorRoot, alphaRoot, betaRoot := arguments[0], arguments[1], arguments[2]

	correlationID, err := uuid.NewRandom()
	if err != nil {
		return errors.Wrap(err, "unable to generate correlation id")
	}
	logger := logging.RootLogger.Sublogger("reconcile").Sublogger(correlationID.String())

	algorithm := hashing.AlgorithmSHA1
	if reconcileConfiguration.hash != "" {
		if err := algorithm.UnmarshalText([]byte(reconcileConfiguration.hash)); err != nil {
			return errors.Wrap(err, "invalid hash algorithm")
		}
	}

	scanRoot := func(label, root string) (*sync.Entry, error) {
		logger.Debugf("scanning %s root: %s", label, root)
		entry, _, err := sync.Scan(root, algorithm.Factory(0)(), sync.NewCache(), reconcileConfiguration.ignores)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to scan %s root", label)
		}
		return entry, nil
	}

	ancestor, err := scanRoot("ancestor", ancestorRoot)
	if err != nil {
		return err
	}
	alpha, err := scanRoot("alpha", alphaRoot)
	if err != nil {
		return err
	}
	beta, err := scanRoot("beta", betaRoot)
	if err != nil {
		return err
	}

	ancestorChanges, alphaChanges, betaChanges, conflicts := sync.Reconcile(ancestor, alpha, beta)
	logger.Printf("reconciled %d ancestor change(s), %d alpha change(s), %d beta change(s), %d conflict(s)",
		len(ancestorChanges), len(alphaChanges), len(betaChanges), len(conflicts))

	fmt.Println("Correlation ID:", correlationID)
	fmt.Println("Ancestor changes:", len(ancestorChanges))
	fmt.Println("Alpha changes:", len(alphaChanges))
	fmt.Println("Beta changes:", len(betaChanges))

	if len(conflicts) == 0 {
		fmt.Println("No conflicts")
		return nil
	}

	fmt.Println("Conflicts:")
	for _, conflict := range conflicts {
		root := conflict.Root
		if root == "" {
			root = "(root)"
		}
		fmt.Printf("  %s: alpha has %d change(s), beta has %d change(s)\n",
			root, len(conflict.AlphaChanges), len(conflict.BetaChanges))
	}

	return nil
}

var reconcileCommand = &cobra.Command{
	Use:   "reconcile <ancestor> <alpha> <beta>",
	Short: "Scan three filesystem roots and reconcile them",
	Run:   cmd.Mainify(reconcileMain),
}

var reconcileConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// hash specifies the hash algorithm to use when scanning.
	hash string
	// ignores specifies ignore patterns to apply during scanning.
	ignores []string
}

func init() {
	flags := reconcileCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&reconcileConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&reconcileConfiguration.hash, "hash", "sha1", "Hash algorithm to use (sha1, blake2b)")
	flags.StringSliceVar(&reconcileConfiguration.ignores, "ignore", nil, "Ignore pattern (may be specified multiple times)")
}
