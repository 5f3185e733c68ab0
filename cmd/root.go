package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ptal",
	Short: "Notify your team channel that a pull request is ready for review",
	Long: `ptal posts a "please take a look" notification for a pull request to a
Discord channel and keeps its status in sync with the review activity on
the code host. The posted message itself carries everything needed to
regenerate it — there is no database.

Get started:
  ptal onboard    Interactive setup wizard
  ptal doctor     Verify credentials and channel access
  ptal send       Post a review request
  ptal refresh    Re-sync one posted notification
  ptal serve      Keep all posted notifications fresh on a schedule
  ptal preview    Render a notification in the terminal without posting`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.ptal/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Version = Version
	rootCmd.AddCommand(
		onboardCmd,
		sendCmd,
		refreshCmd,
		serveCmd,
		previewCmd,
		doctorCmd,
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Verbose logging enabled")
	}
}
