package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/ghusers/cache"
	"github.com/kbukum/ghusers/errors"
)

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local HTTP response cache",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(opts)
			if err != nil {
				return err
			}
			n, err := store.Count()
			if err != nil {
				return errors.Internal(err)
			}
			if err := store.Clear(); err != nil {
				return errors.Internal(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached responses from %s\n", n, store.Directory())
			return nil
		},
	})
	return cmd
}

// openCache opens the store named by the configuration, whether or not the
// cache is enabled for listing runs.
func openCache(opts *options) (*cache.FileStore, error) {
	cfg, err := loadConfig(opts.configFile, opts.envFile)
	if err != nil {
		return nil, errors.Validation(err.Error()).WithCause(err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Validation("config: " + err.Error()).WithCause(err)
	}
	store, err := cache.NewFileStore(cfg.Cache.Directory, cfg.Cache.TTL)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return store, nil
}
