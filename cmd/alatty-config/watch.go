package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/alatty/internal/config"
	"github.com/dshills/alatty/internal/config/notify"
)

func newWatchCmd(ro *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the configuration whenever a config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := ro.loader()
			if err != nil {
				return err
			}
			sys, err := config.NewSystem(l, ro.paths(), ro.overrides, config.WithSystemDebounce(debounce))
			if err != nil {
				return err
			}
			defer sys.Close()

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			sub := sys.Subscribe(func(c notify.Change) {
				mu.Lock()
				defer mu.Unlock()
				switch c.Type {
				case notify.ChangeReload:
					fmt.Fprintf(out, "reloaded from %s: generation %s\n", c.Source, sys.Options().Generation())
				case notify.ChangeDelete:
					fmt.Fprintf(out, "  %s removed\n", c.Name)
				default:
					fmt.Fprintf(out, "  %s: %v -> %v\n", c.Name, c.OldValue, c.NewValue)
				}
			})
			defer sub.Unsubscribe()

			mu.Lock()
			fmt.Fprintf(out, "watching %d config files, generation %s\n", len(ro.paths()), sys.Options().Generation())
			mu.Unlock()

			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "wait this long for writes to settle before reloading")
	return cmd
}
