package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/internal/forge"
	"github.com/ptalbot/ptal/internal/ptal"
	"github.com/ptalbot/ptal/models"
)

var (
	previewMessage string
	previewDeploy  string
)

var previewCmd = &cobra.Command{
	Use:   "preview <pull-request>",
	Short: "Render a notification in the terminal without posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewMessage, "message", "m", "",
		"description shown in the notification body")
	previewCmd.Flags().StringVar(&previewDeploy, "deploy", "",
		"deployment URL to attach as a 'View deployment' button")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ref, err := forge.InferReference(args[0], ".")
	if err != nil {
		return err
	}

	f, err := buildForge(cfg, args[0])
	if err != nil {
		return err
	}

	n, err := ptal.New(f).Create(ctx, ptal.Request{
		ReferenceText: ref.String(),
		Description:   previewMessage,
		DeploymentURL: previewDeploy,
		Requester:     models.Identity{DisplayName: "preview"},
	})
	if err != nil {
		fmt.Println(ptal.UserMessage(err))
		return err
	}

	fmt.Println(renderTerminal(n))
	return nil
}

// renderTerminal approximates the channel embed in the terminal: a bordered
// box tinted with the status color, fields, body and the button row.
func renderTerminal(n *models.RenderedNotification) string {
	color := lipgloss.Color(fmt.Sprintf("#%06X", n.Color))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	labelStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)

	var b strings.Builder
	if n.Author.Name != "" {
		b.WriteString(dimStyle.Render(n.Author.Name) + "\n")
	}
	b.WriteString(titleStyle.Render(n.Title) + "\n")
	b.WriteString(dimStyle.Render(n.TitleURL) + "\n\n")
	b.WriteString(n.Body + "\n")
	for _, f := range n.Fields {
		b.WriteString("\n" + labelStyle.Render(f.Name) + "\n" + f.Value + "\n")
	}
	if len(n.Buttons) > 0 {
		var buttons []string
		for _, btn := range n.Buttons {
			label := btn.Label
			if btn.Emoji != "" {
				label = btn.Emoji + " " + label
			}
			buttons = append(buttons, "["+label+"]")
		}
		b.WriteString("\n" + dimStyle.Render(strings.Join(buttons, "  ")) + "\n")
	}

	return boxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}
