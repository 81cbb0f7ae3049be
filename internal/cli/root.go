// Package cli provides the command-line interface for chromakey.
package cli

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/chromakey-mcp/internal/config"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
	"github.com/ironsheep/chromakey-mcp/internal/logging"
)

// BuildInfo is injected by main from ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("chromakey %s\n  Build time: %s\n  Git commit: %s\n  Go: %s %s/%s",
		b.Version, b.BuildTime, b.GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// app carries state shared by all subcommands of one invocation.
type app struct {
	info       BuildInfo
	configPath string
	logLevel   string

	cfg     *config.Config
	palette imaging.Palette
	logger  hclog.Logger
}

// NewRootCmd builds the chromakey command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	a := &app{info: info}

	root := &cobra.Command{
		Use:   "chromakey",
		Short: "Make flat-colored image backgrounds transparent",
		Long: `chromakey removes flat-colored backgrounds (white, black, green screen,
blue screen, or any color) from images and saves the result as PNG.

Only background connected to the image border is removed, so areas inside the
subject that share the background color are kept. Color data is preserved;
only the alpha channel changes.

Run without a subcommand to start the MCP server on stdin/stdout.`,
		Version:           info.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runServe,
	}
	root.SetVersionTemplate(info.String() + "\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: <user config dir>/chromakey/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off (overrides config)")

	root.AddCommand(
		a.newServeCmd(),
		a.newRemoveCmd(),
		a.newBatchCmd(),
		a.newSuggestCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup loads configuration and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.palette = palette
	a.logger = logging.New("chromakey", cfg.LogLevel, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded",
		"default_color", cfg.DefaultColor,
		"default_tolerance", cfg.DefaultTolerance,
		"workers", cfg.Workers)
	return nil
}

// keyFlags resolves color and tolerance flags against configured defaults.
func (a *app) keyFlags(cmd *cobra.Command, color string, tolerance int) (imaging.RGBColor, int, error) {
	if color == "" {
		color = a.cfg.DefaultColor
	}
	target, err := imaging.ParseColor(color, a.palette)
	if err != nil {
		return imaging.RGBColor{}, 0, err
	}
	if !cmd.Flags().Changed("tolerance") {
		tolerance = a.cfg.DefaultTolerance
	}
	if err := config.ValidateTolerance(tolerance); err != nil {
		return imaging.RGBColor{}, 0, err
	}
	return target, tolerance, nil
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.info.String())
		},
	}
}
