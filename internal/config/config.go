// Package config defines the gateway configuration tree and resolves its
// secret-bearing slots. The set of locations that may hold a secret
// reference is a closed manifest (see manifest.go); nothing else in the
// tree is ever treated as secret-bearing.
package config

import (
	"github.com/szaher/agentden/internal/secrets"
)

// Config is the schema-valid gateway configuration, as produced by Load or
// an external loader. Fields typed *SecretValue are manifest slots.
type Config struct {
	Models   ModelsConfig           `json:"models,omitempty"`
	Skills   map[string]SkillConfig `json:"skills,omitempty"`
	Hooks    *HooksConfig           `json:"hooks,omitempty"`
	Gateway  *GatewayConfig         `json:"gateway,omitempty"`
	Channels ChannelsConfig         `json:"channels,omitempty"`
	Tools    map[string]ToolConfig  `json:"tools,omitempty"`
	Agents   AgentsConfig           `json:"agents,omitempty"`
	Secrets  SecretsConfig          `json:"secrets,omitempty"`
}

// ModelsConfig holds model-provider declarations keyed by provider name.
type ModelsConfig struct {
	Providers map[string]ModelProvider `json:"providers,omitempty"`
}

// ModelProvider configures one LLM API endpoint.
type ModelProvider struct {
	BaseURL string       `json:"baseUrl,omitempty"`
	API     string       `json:"api,omitempty"`
	APIKey  *SecretValue `json:"apiKey,omitempty"`
}

// SkillConfig configures one skill; skills may carry their own API keys.
type SkillConfig struct {
	Enabled *bool        `json:"enabled,omitempty"`
	APIKey  *SecretValue `json:"apiKey,omitempty"`
}

// HooksConfig configures the inbound webhook surface.
type HooksConfig struct {
	Enabled bool         `json:"enabled,omitempty"`
	Path    string       `json:"path,omitempty"`
	Token   *SecretValue `json:"token,omitempty"`
}

// GatewayConfig configures the gateway listener.
type GatewayConfig struct {
	Listen    string       `json:"listen,omitempty"`
	AuthToken *SecretValue `json:"authToken,omitempty"`
}

// ChannelsConfig holds chat-platform channel configuration. The channel
// adapters themselves live outside this module; only their credentials are
// of interest here.
type ChannelsConfig struct {
	Telegram *TelegramConfig `json:"telegram,omitempty"`
	Discord  *DiscordConfig  `json:"discord,omitempty"`
	Slack    *SlackConfig    `json:"slack,omitempty"`
}

// TelegramConfig configures the Telegram channel, with optional per-account
// bot-token overrides.
type TelegramConfig struct {
	Enabled  bool                       `json:"enabled,omitempty"`
	BotToken *SecretValue               `json:"botToken,omitempty"`
	Accounts map[string]TelegramAccount `json:"accounts,omitempty"`
}

// TelegramAccount overrides channel settings for one named account.
type TelegramAccount struct {
	BotToken *SecretValue `json:"botToken,omitempty"`
}

// DiscordConfig configures the Discord channel.
type DiscordConfig struct {
	Enabled  bool         `json:"enabled,omitempty"`
	BotToken *SecretValue `json:"botToken,omitempty"`
}

// SlackConfig configures the Slack channel.
type SlackConfig struct {
	Enabled  bool         `json:"enabled,omitempty"`
	BotToken *SecretValue `json:"botToken,omitempty"`
	AppToken *SecretValue `json:"appToken,omitempty"`
}

// ToolConfig configures one tool integration.
type ToolConfig struct {
	APIKey *SecretValue `json:"apiKey,omitempty"`
}

// AgentsConfig lists the agents this gateway hosts.
type AgentsConfig struct {
	List []AgentEntry `json:"list,omitempty"`
}

// AgentEntry names one agent and its working directory. An agent without a
// Dir inherits the directory of the agent named by InheritFrom and has no
// credential store of its own.
type AgentEntry struct {
	ID          string `json:"id"`
	Dir         string `json:"dir,omitempty"`
	InheritFrom string `json:"inheritFrom,omitempty"`
}

// SecretsConfig declares file providers and per-source defaults.
type SecretsConfig struct {
	Providers map[string]secrets.ProviderSpec `json:"providers,omitempty"`
	Defaults  secrets.Defaults                `json:"defaults,omitempty"`
}

// AgentDirs returns the distinct working directories of agents that have
// one, in declaration order. Agents that only inherit contribute nothing:
// they must never cause a store of their own to exist.
func (c *Config) AgentDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, a := range c.Agents.List {
		if a.Dir == "" {
			continue
		}
		if _, ok := seen[a.Dir]; ok {
			continue
		}
		seen[a.Dir] = struct{}{}
		dirs = append(dirs, a.Dir)
	}
	return dirs
}
