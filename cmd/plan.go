package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"elekit/internal/config"
	"elekit/pkg/domain"

	"github.com/spf13/cobra"
)

// planCommand constructs the 'plan' subcommand that prints every node the
// scaffold would create, without touching the filesystem.
func planCommand(cfg *config.Config) *cobra.Command {
	var layoutPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Prints the nodes the scaffold would create",
		Run: func(cmd *cobra.Command, args []string) {
			l := resolveLayout(context.Background(), cfg, layoutPath)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, n := range l.Nodes {
				if n.Kind == domain.NodeTemplate {
					fmt.Fprintf(w, "%s\t%s\t%d bytes\n", n.Kind, n.Path, len(n.Content))

					continue
				}
				fmt.Fprintf(w, "%s\t%s\t\n", n.Kind, n.Path)
			}
			_ = w.Flush()

			//nolint: forbidigo
			fmt.Printf("%d nodes in layout %q: %d dirs, %d placeholders, %d templates\n",
				len(l.Nodes), l.Name, len(l.Dirs()), len(l.Files()), len(l.Templates()))
		},
	}

	cmd.Flags().StringVar(&layoutPath, "layout", "", "Layout yaml file (defaults to the built-in layout)")

	return cmd
}
