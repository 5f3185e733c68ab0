package config

// Config is the root configuration structure for ptal.
// Serialised to ~/.ptal/config.json.
type Config struct {
	Forge   ForgeConfig   `mapstructure:"forge"   json:"forge"`
	Discord DiscordConfig `mapstructure:"discord" json:"discord"`
	Sweep   SweepConfig   `mapstructure:"sweep"   json:"sweep"`
}

// ForgeConfig holds credentials for each supported code hosting platform.
type ForgeConfig struct {
	// Provider is the default platform when a reference does not imply one:
	// "github" (default) or "gitlab".
	Provider string         `mapstructure:"provider" json:"provider"`
	GitHub   []GitHubConfig `mapstructure:"github"   json:"github"`
	GitLab   []GitLabConfig `mapstructure:"gitlab"   json:"gitlab"`
}

// GitHubConfig holds credentials for a single GitHub instance.
type GitHubConfig struct {
	Token string `mapstructure:"token" json:"token"`
	// Host allows enterprise GitHub (e.g. github.mycompany.com).
	Host string `mapstructure:"host"  json:"host"`
}

// GitLabConfig holds credentials for a single GitLab instance.
type GitLabConfig struct {
	Token string `mapstructure:"token" json:"token"`
	Host  string `mapstructure:"host"  json:"host"`
}

// DiscordConfig identifies the bot and the channel it notifies.
type DiscordConfig struct {
	// Token is the bot token used for the REST API.
	Token string `mapstructure:"token" json:"token"`
	// ChannelID is the channel notifications are posted to.
	ChannelID string `mapstructure:"channel_id" json:"channel_id"`
}

// SweepConfig controls the periodic in-place refresh of posted notifications.
type SweepConfig struct {
	// Schedule is a cron expression; empty disables the sweep.
	Schedule string `mapstructure:"schedule" json:"schedule"`
	// HistoryLimit is how many recent channel messages each sweep inspects.
	HistoryLimit int `mapstructure:"history_limit" json:"history_limit"`
}
