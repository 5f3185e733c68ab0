package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptalbot/ptal/internal/chat"
	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/internal/ptal"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <message-id>",
	Short: "Re-sync one posted notification with the code host",
	Long: `Fetches the given channel message, decodes the notification context
embedded in it, re-runs the review pipeline against the code host, and
edits the message in place. No local state is consulted — the message
itself is the only input.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	messenger := chat.NewDiscord(cfg.Discord)
	if !messenger.IsConfigured() {
		return fmt.Errorf("discord is not configured; run 'ptal onboard'")
	}

	msg, err := messenger.Message(ctx, args[0])
	if err != nil {
		return err
	}
	if msg.Notification == nil {
		err := &ptal.DecodeError{Err: fmt.Errorf("message %s carries no notification", args[0])}
		fmt.Fprintln(os.Stderr, ptal.UserMessage(err))
		return err
	}

	f, err := buildForge(cfg, msg.Notification.TitleURL)
	if err != nil {
		return err
	}

	me, err := messenger.BotIdentity(ctx)
	if err != nil {
		return err
	}

	updated, err := ptal.New(f).Refresh(ctx, msg.Notification, me)
	if err != nil {
		fmt.Fprintln(os.Stderr, ptal.UserMessage(err))
		return err
	}

	if err := messenger.Update(ctx, args[0], updated); err != nil {
		return err
	}
	fmt.Printf("Refreshed message %s (%s)\n", args[0], updated.Field("Status"))
	return nil
}
