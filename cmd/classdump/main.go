/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command classdump is a standalone diagnostic binary: it loads, links, and
// resolves a single .class file through this core's full pipeline and
// renders the resulting ClassEntry. It is not a bootstrap JVM launcher —
// grounded on mabhi256-jdiag's cobra command tree and lipgloss-styled
// terminal output.
package main

import (
	"fmt"
	"os"

	"jvmcore/cmd/classdump/internal/render"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "classdump",
		Short: "Load, link, and resolve a .class file and print its structure",
	}
	root.AddCommand(newDumpCmd())
	return root
}

func newDumpCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Dump a single class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := render.LoadLinkResolve(args[0], verbose)
			if err != nil {
				return err
			}
			fmt.Println(render.Render(result))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable trace logging during load/link/resolve")
	return cmd
}
