package main

import (
	"context"
	"fmt"

	"elekit/pkg/logger"
	"elekit/pkg/styles"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stylesCommand constructs the 'styles' subcommand that renders the
// Textocorrector ELE stylesheet to stdout or a file.
func stylesCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Renders the Textocorrector ELE stylesheet",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			css, err := styles.Render()
			if err != nil {
				logger.Fatal(ctx, "could not render stylesheet", zap.Error(err))
			}

			if out == "" {
				fmt.Print(css) //nolint: forbidigo

				return
			}

			if err := renameio.WriteFile(out, []byte(css), 0o644); err != nil {
				logger.Fatal(ctx, "could not write stylesheet", zap.Error(err))
			}
			logger.Info(ctx, "stylesheet written", zap.String("path", out))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the stylesheet to a file instead of stdout")

	return cmd
}
