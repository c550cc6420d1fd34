package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/alatty/internal/config/diag"
)

func newCheckCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report every problem in the config files",
		Long: `Load the configuration and list every line that was ignored and every
setting that was adjusted. Exits non-zero if any line was ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := ro.loader()
			if err != nil {
				return err
			}

			c := diag.NewCollector()
			opts, err := l.Load(ro.paths(), ro.overrides, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, bad := range c.BadLines() {
				fmt.Fprintln(out, bad.Error())
			}
			for _, w := range c.Warnings() {
				fmt.Fprintf(out, "warning: %s\n", w)
			}

			if err := c.Err(); err != nil {
				return fmt.Errorf("%d invalid config lines", len(c.BadLines()))
			}
			fmt.Fprintf(out, "OK: %d config files, %d keyboard modes, %d mouse bindings\n",
				len(opts.ConfigPaths()), len(opts.KeyboardModes()), len(opts.MouseMap()))
			return nil
		},
	}
}
