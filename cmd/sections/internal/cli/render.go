package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a JSON page to an HTML fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), input, output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "page JSON file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output HTML file (default stdout)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) render(ctx context.Context, input, output string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	page, err := readInput(input)
	if err != nil {
		return err
	}

	var w io.Writer = a.out
	if output != "" && output != "-" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := a.module.RenderPage(ctx, page, w); err != nil {
		return fmt.Errorf("render %s: %w", input, err)
	}
	a.logger.Info("cli.render.completed", "input", input, "output", output)
	return nil
}

func readInput(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	page, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return page, nil
}
