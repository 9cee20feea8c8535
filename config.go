package placard

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file. The bot
// token should always come from the environment in production.
const (
	envBotToken = "PLACARD_BOT_TOKEN"
	envGuildID  = "PLACARD_GUILD_ID"
)

// Configuration represents the configuration file.
type Configuration struct {
	Placard struct {
		HTTPHost          string `json:"http_host" yaml:"http_host"`
		PrometheusAddress string `json:"prometheus_address" yaml:"prometheus_address"`
	} `json:"placard" yaml:"placard"`

	Bot struct {
		Token   string `json:"token" yaml:"token"`
		GuildID string `json:"guild_id" yaml:"guild_id"`
	} `json:"bot" yaml:"bot"`

	// Games is the curated allowlist of game names permitted on cards.
	Games []string `json:"games" yaml:"games"`

	Images struct {
		FetchTimeoutSeconds int `json:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds"`
	} `json:"images" yaml:"images"`
}

// FetchTimeout returns the configured image fetch timeout, or zero to
// let the image resolver apply its default.
func (configuration *Configuration) FetchTimeout() time.Duration {
	return time.Duration(configuration.Images.FetchTimeoutSeconds) * time.Second
}

// LoadConfiguration handles loading the configuration file and applying
// environment overrides.
func (p *Placard) LoadConfiguration(path string) (configuration Configuration, err error) {
	p.Logger.Debug().
		Str("path", path).
		Msg("Loading configuration")

	defer func() {
		if err == nil {
			p.Logger.Info().Msg("Configuration loaded")
		}
	}()

	file, err := os.ReadFile(path)
	if err != nil {
		return configuration, ErrReadConfigurationFailure
	}

	err = yaml.Unmarshal(file, &configuration)
	if err != nil {
		return configuration, ErrLoadConfigurationFailure
	}

	if token := os.Getenv(envBotToken); token != "" {
		configuration.Bot.Token = token
	}

	if guildID := os.Getenv(envGuildID); guildID != "" {
		configuration.Bot.GuildID = guildID
	}

	if configuration.Bot.Token == "" {
		return configuration, fmt.Errorf("bot token not in file or %s: %w", envBotToken, ErrConfigurationMissingToken)
	}

	if configuration.Bot.GuildID == "" {
		return configuration, fmt.Errorf("guild id not in file or %s: %w", envGuildID, ErrConfigurationMissingGuild)
	}

	return configuration, nil
}
