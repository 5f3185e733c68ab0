package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptalbot/ptal/internal/chat"
	"github.com/ptalbot/ptal/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify credentials and channel access",
	Long: `Checks that code host credentials are configured and that the Discord
bot can reach its channel.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	allOK := true

	fmt.Println("=== ptal doctor ===")
	fmt.Println()

	fmt.Print("GitHub token ............. ")
	if len(cfg.Forge.GitHub) == 0 || cfg.Forge.GitHub[0].Token == "" {
		fmt.Println("WARN (not configured — run 'ptal onboard')")
		allOK = false
	} else {
		host := cfg.Forge.GitHub[0].Host
		if host == "" {
			host = "github.com"
		}
		fmt.Printf("OK (%s)\n", host)
	}

	fmt.Print("GitLab token ............. ")
	if len(cfg.Forge.GitLab) == 0 || cfg.Forge.GitLab[0].Token == "" {
		fmt.Println("not configured (optional)")
	} else {
		host := cfg.Forge.GitLab[0].Host
		if host == "" {
			host = "gitlab.com"
		}
		fmt.Printf("OK (%s)\n", host)
	}

	fmt.Print("Discord .................. ")
	messenger := chat.NewDiscord(cfg.Discord)
	switch {
	case !messenger.IsConfigured():
		fmt.Println("WARN (bot token or channel missing — run 'ptal onboard')")
		allOK = false
	default:
		me, err := messenger.BotIdentity(ctx)
		if err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
			break
		}
		if _, err := messenger.History(ctx, 1); err != nil {
			fmt.Printf("FAIL (authenticated as %s, but channel %s is unreadable: %s)\n",
				me.DisplayName, cfg.Discord.ChannelID, err)
			allOK = false
			break
		}
		fmt.Printf("OK (%s in channel %s)\n", me.DisplayName, cfg.Discord.ChannelID)
	}

	fmt.Print("Sweep schedule ........... ")
	if cfg.Sweep.Schedule == "" {
		fmt.Println("disabled")
	} else {
		fmt.Printf("OK (%s, last %d messages)\n", cfg.Sweep.Schedule, cfg.Sweep.HistoryLimit)
	}

	fmt.Println()
	if !allOK {
		return fmt.Errorf("some checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}
