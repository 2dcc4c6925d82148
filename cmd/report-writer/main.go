// cmd/report-writer/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"report-writer/internal/common/config"
	"report-writer/internal/common/logger"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "report-writer",
		Short: "Electrical certificate report writer",
		Long: `report-writer turns electrical inspection form data into a written
report through an AI generation backend.

Run "serve" for the HTTP API, or use "prompt" and "generate" to work with a
single certificate from the shell.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: configs/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newTemplatesCmd())
	root.AddCommand(newPromptCmd())
	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newRegistryCmd())
	return root
}

// load reads configuration from --config or the default search path.
func (o *rootOptions) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// logger builds the service logger. output overrides logging.output when set.
func (o *rootOptions) logger(cfg *config.Config, output string) (logger.Logger, func()) {
	if output == "" {
		output = cfg.Logging.Output
	}
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, output)
	return logger.NewZapAdapter(zapLog), func() { _ = zapLog.Sync() }
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
