package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ptalbot/ptal/internal/chat"
	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/internal/forge"
	"github.com/ptalbot/ptal/internal/ptal"
	"github.com/ptalbot/ptal/internal/sweep"
)

var (
	serveSchedule string
	serveOnce     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Keep posted notifications in sync on a schedule",
	Long: `Runs the sweep loop: on every tick the bot reads its recent channel
messages, decodes each notification it posted, and refreshes the ones
whose review status can still change. Merged notifications are final and
skipped.

The channel history is the entire work queue; nothing is stored locally,
so the daemon can be restarted at any time without losing track of
anything.

Example schedules:
  "@every 10m"  — every ten minutes (default)
  "0 * * * *"   — on the hour`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveSchedule, "schedule", "",
		"cron expression overriding the configured sweep schedule")
	serveCmd.Flags().BoolVar(&serveOnce, "once", false,
		"run a single sweep and exit")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nShutting down...")
		cancel()
	}()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveSchedule != "" {
		cfg.Sweep.Schedule = serveSchedule
	}

	messenger := chat.NewDiscord(cfg.Discord)
	if !messenger.IsConfigured() {
		return fmt.Errorf("discord is not configured; run 'ptal onboard'")
	}

	provider := cfg.Forge.Provider
	if provider == "" {
		provider = "github"
	}
	f, err := forge.New(provider, cfg)
	if err != nil {
		return err
	}

	s := sweep.New(messenger, ptal.New(f), cfg.Sweep)

	if serveOnce {
		n, err := s.Sweep(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Refreshed %d notification(s)\n", n)
		return nil
	}

	fmt.Printf("ptal serve starting\n")
	fmt.Printf("  Provider : %s\n", provider)
	fmt.Printf("  Channel  : %s\n", cfg.Discord.ChannelID)
	fmt.Printf("  Schedule : %s\n\n", cfg.Sweep.Schedule)
	fmt.Println("Press Ctrl+C to stop.")

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
