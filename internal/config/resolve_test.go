package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/szaher/agentden/internal/secrets"
)

func envRef(name string) *SecretValue {
	return &SecretValue{Ref: &secrets.Ref{Source: secrets.SourceEnv, Provider: secrets.DefaultProvider, ID: name}}
}

func literal(s string) *SecretValue {
	return &SecretValue{Literal: s}
}

func testConfig() *Config {
	return &Config{
		Models: ModelsConfig{Providers: map[string]ModelProvider{
			"openai":    {APIKey: envRef("OPENAI_API_KEY")},
			"anthropic": {APIKey: literal("sk-already-plain")},
		}},
		Hooks: &HooksConfig{Enabled: true, Token: envRef("HOOK_TOKEN")},
		Channels: ChannelsConfig{
			Telegram: &TelegramConfig{
				BotToken: envRef("TG_TOKEN"),
				Accounts: map[string]TelegramAccount{
					"work": {BotToken: envRef("TG_WORK_TOKEN")},
				},
			},
		},
		Tools: map[string]ToolConfig{
			"search": {APIKey: envRef("SEARCH_KEY")},
		},
	}
}

func testEnv() map[string]string {
	return map[string]string{
		"OPENAI_API_KEY": "sk-openai",
		"HOOK_TOKEN":     "hk-1",
		"TG_TOKEN":       "tg-main",
		"TG_WORK_TOKEN":  "tg-work",
		"SEARCH_KEY":     "srch-1",
	}
}

func TestResolveSecrets_AllSlots(t *testing.T) {
	cfg := testConfig()
	reg := secrets.NewRegistry(testEnv(), nil, secrets.Defaults{})

	resolved, err := ResolveSecrets(cfg, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]*SecretValue{
		"sk-openai":        resolved.Models.Providers["openai"].APIKey,
		"sk-already-plain": resolved.Models.Providers["anthropic"].APIKey,
		"hk-1":             resolved.Hooks.Token,
		"tg-main":          resolved.Channels.Telegram.BotToken,
		"tg-work":          resolved.Channels.Telegram.Accounts["work"].BotToken,
		"srch-1":           resolved.Tools["search"].APIKey,
	}
	for want, v := range checks {
		if v.Value() != want {
			t.Errorf("slot value = %q, want %q", v.Value(), want)
		}
		if v.Ref != nil {
			t.Errorf("slot for %q still carries a reference", want)
		}
	}
}

func TestResolveSecrets_InputNotMutated(t *testing.T) {
	cfg := testConfig()
	reg := secrets.NewRegistry(testEnv(), nil, secrets.Defaults{})

	if _, err := ResolveSecrets(cfg, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ref := cfg.Models.Providers["openai"].APIKey.Ref; ref == nil || ref.ID != "OPENAI_API_KEY" {
		t.Errorf("input config mutated: openai apiKey = %+v", cfg.Models.Providers["openai"].APIKey)
	}
	if cfg.Channels.Telegram.BotToken.Ref == nil {
		t.Error("input config mutated: telegram botToken lost its reference")
	}
}

func TestResolveSecrets_AbsentSlotsSkipped(t *testing.T) {
	cfg := &Config{
		Gateway: &GatewayConfig{Listen: ":8080"}, // authToken absent
	}
	reg := secrets.NewRegistry(nil, nil, secrets.Defaults{})

	resolved, err := ResolveSecrets(cfg, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Gateway.AuthToken != nil {
		t.Errorf("absent slot materialized: %+v", resolved.Gateway.AuthToken)
	}
}

func TestResolveSecrets_FailureNamesSlot(t *testing.T) {
	cfg := &Config{
		Hooks: &HooksConfig{Token: envRef("NOT_SET_ANYWHERE")},
	}
	reg := secrets.NewRegistry(nil, nil, secrets.Defaults{})

	_, err := ResolveSecrets(cfg, reg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "hooks.token") {
		t.Errorf("error %q does not name the failing slot", err)
	}
}

func TestResolveSecrets_Deterministic(t *testing.T) {
	cfg := testConfig()
	env := testEnv()

	a, err := ResolveSecrets(cfg, secrets.NewRegistry(env, nil, secrets.Defaults{}))
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	b, err := ResolveSecrets(cfg, secrets.NewRegistry(env, nil, secrets.Defaults{}))
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different resolved configs")
	}
}

func TestSecretSlotPaths(t *testing.T) {
	got := SecretSlotPaths(testConfig())
	want := []string{
		"models.providers.anthropic.apiKey",
		"models.providers.openai.apiKey",
		"hooks.token",
		"channels.telegram.botToken",
		"channels.telegram.accounts.work.botToken",
		"tools.search.apiKey",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("slot paths = %v, want %v", got, want)
	}
}

func TestLoad_YAMLAndJSONEquivalent(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "agentden.yaml")
	yamlDoc := `
models:
  providers:
    openai:
      apiKey:
        source: env
        provider: default
        id: OPENAI_API_KEY
hooks:
  token: literal-token
`
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	jsonPath := filepath.Join(dir, "agentden.json")
	jsonDoc := `{
  "models": {"providers": {"openai": {"apiKey": {"source": "env", "provider": "default", "id": "OPENAI_API_KEY"}}}},
  "hooks": {"token": "literal-token"}
}`
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	fromYAML, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("loading yaml: %v", err)
	}
	fromJSON, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("loading json: %v", err)
	}

	if !reflect.DeepEqual(fromYAML, fromJSON) {
		t.Errorf("yaml and json configs differ:\n%+v\n%+v", fromYAML, fromJSON)
	}
	ref := fromYAML.Models.Providers["openai"].APIKey.Ref
	if ref == nil || ref.ID != "OPENAI_API_KEY" {
		t.Errorf("reference not decoded: %+v", fromYAML.Models.Providers["openai"].APIKey)
	}
	if got := fromYAML.Hooks.Token.Value(); got != "literal-token" {
		t.Errorf("literal token = %q", got)
	}
}

func TestSecretValue_RejectsBadReferences(t *testing.T) {
	for _, doc := range []string{
		`{"hooks": {"token": {"source": "vault", "id": "x"}}}`,
		`{"hooks": {"token": {"source": "env"}}}`,
		`{"hooks": {"token": 42}}`,
	} {
		path := filepath.Join(t.TempDir(), "cfg.json")
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("config %s decoded without error", doc)
		}
	}
}
