// Package cmd holds the toolshed command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bnema/toolshed/internal/app"
	"github.com/bnema/toolshed/internal/config"
	"github.com/bnema/toolshed/pkg/logger"
)

// rootOptions carries state shared by the subcommands of one invocation.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
	kernel  *app.Kernel
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "toolshed",
		Short: "Cron expression builder and Vietnamese salary tax estimator",
		Long: `toolshed builds six-field cron expressions from per-field options and
estimates Vietnamese personal income tax, insurance and net salary.

Both tools are available as web pages and a JSON API (toolshed serve) and
directly on the command line.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./toolshed.yaml)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newCronCmd(opts))
	rootCmd.AddCommand(newTaxCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the configuration, sets up logging and builds the kernel. It is
// called by the commands that need services.
func (o *rootOptions) load(cmd *cobra.Command) (*app.Kernel, error) {
	if o.kernel != nil {
		return o.kernel, nil
	}

	if err := o.readConfig(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFrom(o.v)
	if err != nil {
		return nil, err
	}

	l := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if used := o.v.ConfigFileUsed(); used != "" {
		l.Debug("using config file", "path", used)
	}

	k, err := app.NewKernel(cfg, l)
	if err != nil {
		return nil, err
	}
	o.kernel = k
	return k, nil
}

func (o *rootOptions) readConfig() error {
	config.BindEnv(o.v)

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	o.v.SetConfigName("toolshed")
	o.v.SetConfigType("yaml")

	// Current directory (highest priority)
	o.v.AddConfigPath(".")

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		o.v.AddConfigPath(filepath.Join(userConfigDir, "toolshed"))
	}

	o.v.AddConfigPath("/etc/toolshed")

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug("no config file found, using defaults")
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}
