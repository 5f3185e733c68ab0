package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ptalbot/ptal/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Interactive setup wizard for ptal",
	Long: `Walks you through configuring ptal:
  - Code host credentials (GitHub, optionally GitLab)
  - Discord bot token and target channel
  - Sweep schedule for 'ptal serve'`,
	RunE: runOnboard,
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7C3AED")).
	MarginBottom(1)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#10B981"))

var subtleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6B7280"))

func runOnboard(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println(headerStyle.Render("  ptal — review request notifications for your channel"))
	fmt.Println(subtleStyle.Render("  Posts PTAL messages and keeps their review status in sync.\n"))

	// Load existing config or start fresh.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = &config.Config{}
	}

	// --- Step 1: Code host ---
	fmt.Println(headerStyle.Render("  Step 1/3 · Code host"))

	var githubToken, githubHost string
	if len(cfg.Forge.GitHub) > 0 {
		githubToken = cfg.Forge.GitHub[0].Token
		githubHost = cfg.Forge.GitHub[0].Host
	}
	var gitlabToken, gitlabHost string
	if len(cfg.Forge.GitLab) > 0 {
		gitlabToken = cfg.Forge.GitLab[0].Token
		gitlabHost = cfg.Forge.GitLab[0].Host
	}
	defaultProvider := cfg.Forge.Provider
	if defaultProvider == "" {
		defaultProvider = "github"
	}

	forgeForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub token").
				Description("A classic or fine-grained token with repo read access.").
				Placeholder("ghp_...").
				EchoMode(huh.EchoModePassword).
				Value(&githubToken),
			huh.NewInput().
				Title("GitHub host (blank for github.com)").
				Placeholder("github.mycompany.com").
				Value(&githubHost),
			huh.NewInput().
				Title("GitLab token (optional)").
				Placeholder("glpat-...").
				EchoMode(huh.EchoModePassword).
				Value(&gitlabToken),
			huh.NewInput().
				Title("GitLab host (blank for gitlab.com)").
				Value(&gitlabHost),
			huh.NewSelect[string]().
				Title("Default provider").
				Options(
					huh.NewOption("GitHub", "github"),
					huh.NewOption("GitLab", "gitlab"),
				).
				Value(&defaultProvider),
		),
	)
	if err := forgeForm.Run(); err != nil {
		return err
	}

	// --- Step 2: Discord ---
	fmt.Println(headerStyle.Render("  Step 2/3 · Discord"))
	fmt.Println(subtleStyle.Render("  The bot needs permission to read, send and edit messages in the"))
	fmt.Println(subtleStyle.Render("  target channel.\n"))

	discordToken := cfg.Discord.Token
	channelID := cfg.Discord.ChannelID

	discordForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bot token").
				EchoMode(huh.EchoModePassword).
				Value(&discordToken),
			huh.NewInput().
				Title("Channel ID").
				Description("Right-click the channel → Copy Channel ID (developer mode).").
				Value(&channelID),
		),
	)
	if err := discordForm.Run(); err != nil {
		return err
	}

	// --- Step 3: Sweep ---
	fmt.Println(headerStyle.Render("  Step 3/3 · Sweep schedule"))

	schedule := cfg.Sweep.Schedule
	if schedule == "" {
		schedule = "@every 10m"
	}
	sweepForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schedule for 'ptal serve'").
				Description("Cron expression or @every duration. Blank disables the sweep.").
				Value(&schedule),
		),
	)
	if err := sweepForm.Run(); err != nil {
		return err
	}

	cfg.Forge.Provider = defaultProvider
	cfg.Forge.GitHub = []config.GitHubConfig{{Token: githubToken, Host: githubHost}}
	if gitlabToken != "" {
		cfg.Forge.GitLab = []config.GitLabConfig{{Token: gitlabToken, Host: gitlabHost}}
	}
	cfg.Discord.Token = discordToken
	cfg.Discord.ChannelID = channelID
	cfg.Sweep.Schedule = schedule
	if cfg.Sweep.HistoryLimit == 0 {
		cfg.Sweep.HistoryLimit = 50
	}

	if err := config.Save(cfg, cfgFile); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	path, _ := config.ConfigPath(cfgFile)
	fmt.Println()
	fmt.Println(successStyle.Render("  Configuration saved to " + path))
	fmt.Println(subtleStyle.Render("  Run 'ptal doctor' to verify, then 'ptal send' to post your first request."))
	return nil
}
