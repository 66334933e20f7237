package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/synctool/synctool/cmd"
	"github.com/synctool/synctool/pkg/cache"
	"github.com/synctool/synctool/pkg/hashing"
	"github.com/synctool/synctool/sync"
)

// defaultCachePath computes the cache file path for a root, in the absence
// of an explicit --cache-path override: a dotfile sitting alongside the root
// itself.
func defaultCachePath(root string) string {
	return filepath.Join(filepath.Dir(root), "."+filepath.Base(root)+".synctool-cache")
}

// entryStats accumulates simple counts over an Entry tree for summary
// reporting.
type entryStats struct {
	files          uint64
	directories    uint64
	totalFileBytes uint64
}

func (s *entryStats) visit(entry *sync.Entry) {
	if entry == nil {
		return
	}
	if entry.Kind == sync.EntryKind_Directory {
		s.directories++
		for _, child := range entry.Contents {
			s.visit(child)
		}
		return
	}
	s.files++
}

func scanMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("exactly one root path must be specified")
	}
	root := arguments[0]

	algorithm := hashing.AlgorithmSHA1
	if scanConfiguration.hash != "" {
		if err := algorithm.UnmarshalText([]byte(scanConfiguration.hash)); err != nil {
			return errors.Wrap(err, "invalid hash algorithm")
		}
	}

	cachePath := scanConfiguration.cachePath
	if cachePath == "" {
		cachePath = defaultCachePath(root)
	}

	priorCache, err := cache.Load(cachePath)
	if err != nil {
		cmd.Warning(fmt.Sprintf("unable to load existing cache, starting fresh: %v", err))
		priorCache = sync.NewCache()
	}

	hasher := algorithm.Factory(scanConfiguration.hashDigestSize)()
	entry, newCache, err := sync.Scan(root, hasher, priorCache, scanConfiguration.ignores)
	if err != nil {
		return errors.Wrap(err, "scan failed")
	}

	if !scanConfiguration.noCache {
		if err := cache.Save(cachePath, newCache); err != nil {
			cmd.Warning(fmt.Sprintf("unable to save cache: %v", err))
		}
	}

	var stats entryStats
	stats.visit(entry)

	fmt.Println("Root:", root)
	if entry == nil {
		fmt.Println("Root does not exist")
		return nil
	}
	fmt.Println("Files:", stats.files)
	fmt.Println("Directories:", stats.directories)
	fmt.Println("Cache entries:", len(newCache.Entries))
	var totalCachedBytes uint64
	for _, e := range newCache.Entries {
		totalCachedBytes += e.Size
	}
	fmt.Println("Total scanned size:", humanize.Bytes(totalCachedBytes))

	return nil
}

var scanCommand = &cobra.Command{
	Use:   "scan <root>",
	Short: "Scan a filesystem root and print a summary of its contents",
	Run:   cmd.Mainify(scanMain),
}

var scanConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// hash specifies the hash algorithm to use ("sha1" or "blake2b").
	hash string
	// hashDigestSize specifies the BLAKE2b digest width in bytes.
	hashDigestSize int
	// ignores specifies ignore patterns.
	ignores []string
	// cachePath overrides the default cache file location.
	cachePath string
	// noCache disables cache persistence entirely.
	noCache bool
}

func init() {
	flags := scanCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&scanConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&scanConfiguration.hash, "hash", "sha1", "Hash algorithm to use (sha1, blake2b)")
	flags.IntVar(&scanConfiguration.hashDigestSize, "hash-digest-size", 0, "BLAKE2b digest size in bytes (ignored for sha1)")
	flags.StringSliceVar(&scanConfiguration.ignores, "ignore", nil, "Ignore pattern (may be specified multiple times)")
	flags.StringVar(&scanConfiguration.cachePath, "cache-path", "", "Override the scan cache file path")
	flags.BoolVar(&scanConfiguration.noCache, "no-cache", false, "Don't persist the scan cache")
}
