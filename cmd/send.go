package cmd

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/ptalbot/ptal/internal/chat"
	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/internal/forge"
	"github.com/ptalbot/ptal/internal/ptal"
	"github.com/ptalbot/ptal/models"
)

var (
	sendMessage   string
	sendDeploy    string
	sendProvider  string
	sendRequester string
	sendAvatar    string
	sendDryRun    bool
)

var sendCmd = &cobra.Command{
	Use:   "send <pull-request>",
	Short: "Post a review request notification to the channel",
	Long: `Posts a PTAL notification for a pull request. The reference can be a
full URL, the owner/repo#number shorthand, or — inside a checkout with an
origin remote — just the number:

  ptal send https://github.com/acme/widgets/pull/42 -m "please check"
  ptal send acme/widgets#42 --deploy https://preview.example/pr-42
  ptal send 42`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendMessage, "message", "m", "",
		"description shown in the notification body")
	sendCmd.Flags().StringVar(&sendDeploy, "deploy", "",
		"deployment URL to attach as a 'View deployment' button")
	sendCmd.Flags().StringVar(&sendProvider, "provider", "",
		"code host (github or gitlab; default: detected from the reference)")
	sendCmd.Flags().StringVar(&sendRequester, "requester", "",
		"display name shown as the requester (default: the bot account)")
	sendCmd.Flags().StringVar(&sendAvatar, "avatar", "",
		"avatar URL shown for the requester")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false,
		"render to the terminal instead of posting")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ref, err := forge.InferReference(args[0], ".")
	if err != nil {
		fmt.Fprintln(os.Stderr, ptal.UserMessage(&ptal.ParseError{Input: args[0], Err: err}))
		return err
	}

	f, err := buildForge(cfg, args[0])
	if err != nil {
		return err
	}

	messenger := chat.NewDiscord(cfg.Discord)
	requester, err := resolveRequester(ctx, messenger)
	if err != nil {
		return err
	}

	svc := ptal.New(f)
	n, err := svc.Create(ctx, ptal.Request{
		ReferenceText: ref.String(),
		Description:   sendMessage,
		DeploymentURL: sendDeploy,
		Requester:     requester,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, ptal.UserMessage(err))
		return err
	}

	if sendDryRun {
		fmt.Println(renderTerminal(n))
		return nil
	}
	if !messenger.IsConfigured() {
		return fmt.Errorf("discord is not configured; run 'ptal onboard' or use --dry-run")
	}

	id, err := messenger.Post(ctx, n)
	if err != nil {
		return err
	}
	fmt.Printf("Posted %s as message %s\n", ref, id)
	return nil
}

// buildForge picks the provider implied by the reference text, falling back
// to the configured default.
func buildForge(cfg *config.Config, refText string) (forge.Forge, error) {
	provider := sendProvider
	if provider == "" {
		provider = forge.DetectProvider(refText)
	}
	if provider == "" {
		provider = cfg.Forge.Provider
	}
	if provider == "" {
		provider = "github"
	}
	return forge.New(provider, cfg)
}

// resolveRequester prefers the explicit flags, then the bot account, then the
// local OS user as a last resort for --dry-run without credentials.
func resolveRequester(ctx context.Context, messenger *chat.Discord) (models.Identity, error) {
	if sendRequester != "" {
		return models.Identity{DisplayName: sendRequester, AvatarURL: sendAvatar}, nil
	}
	if messenger.IsConfigured() {
		return messenger.BotIdentity(ctx)
	}
	if u, err := user.Current(); err == nil {
		return models.Identity{DisplayName: u.Username}, nil
	}
	return models.Identity{DisplayName: "ptal"}, nil
}
