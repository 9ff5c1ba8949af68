package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	sections "github.com/goliatone/go-sections"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// moduleBuilder is swapped in tests.
var moduleBuilder = func(cfg sections.Config) (*sections.Module, error) {
	return sections.New(cfg)
}

type app struct {
	out     io.Writer
	cfgFile string

	config sections.Config
	module *sections.Module
	logger interfaces.Logger
}

// NewRootCommand builds the sections command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	a := &app{out: out, logger: logging.NoOp()}

	root := &cobra.Command{
		Use:           "sections",
		Short:         "Render page sections and rich text to HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./sections.yaml)")

	root.AddCommand(newRenderCommand(a), newServeCommand(a))
	return root
}

func (a *app) initialize() error {
	cfg, used, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	a.config = cfg
	a.module = module
	a.logger = logging.ModuleLogger(module.Container().LoggerProvider(), "sections.cli")
	if used != "" {
		a.logger.Debug("cli.config.loaded", "path", used)
	}
	return nil
}
