// Command gojets computes jet scheme lifts and general components of
// affine varieties described in YAML problem files.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/internal/config"
	"github.com/njchilds90/gojets/jets"
)

var (
	// Global flags
	configPath string
	verbose    bool
	timeout    time.Duration

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
	engine *algebra.Engine
)

var rootCmd = &cobra.Command{
	Use:   "gojets",
	Short: "Jet schemes and their general components",
	Long: `gojets builds jet rings, Hasse-Schmidt lifts and the general component
of the jet scheme of an affine variety, by saturation or through a
birational model.

Problems are YAML files:

  field: QQ
  vars: [x, y]
  ideal: ["x^2 - y^3 - y^2"]
  n: 2
  model:
    vars: [s]
    map: ["s^3 - s", "s^2 - 1"]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			c.Logging.Level = "debug"
		}
		if err := c.Validate(); err != nil {
			return err
		}
		l, err := c.Logger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, logger = c, l
		engine = c.NewEngine(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Abort computations after this long (default from config)")

	rootCmd.AddCommand(ringCmd, liftCmd, deriveCmd, componentCmd, compareCmd, groebnerCmd)
}

// commandContext bounds a command by --timeout, or the configured engine
// timeout when the flag is unset.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d := timeout
	if d == 0 {
		d = cfg.GetTimeout()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func jetOptions(order string) []jets.Option {
	if order == "" {
		order = cfg.Jets.Order
	}
	return []jets.Option{
		jets.WithEngine(engine),
		jets.WithLogger(logger),
		jets.WithOrder(order),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
