package runtime

import (
	"context"
	"testing"

	"github.com/szaher/agentden/internal/authstore"
	"github.com/szaher/agentden/internal/config"
)

func TestActivateClear(t *testing.T) {
	t.Cleanup(Clear)

	if _, ok := ActiveConfig(); ok {
		t.Fatal("accessor reports an active snapshot before activation")
	}
	if _, ok := ActiveAuthStore("/agents/a"); ok {
		t.Fatal("auth accessor reports an active snapshot before activation")
	}

	snap, err := Prepare(context.Background(), PrepareOptions{
		Config: &config.Config{
			Hooks: &config.HooksConfig{Token: &config.SecretValue{Literal: "tok"}},
		},
		AgentDirs: []string{"/agents/a"},
		LoadAuthStore: staticLoader(map[string]*authstore.Store{
			"/agents/a": {Version: 1, Profiles: map[string]authstore.Profile{
				"openai:default": {Type: authstore.ProfileTypeAPIKey, Provider: "openai", Key: "sk"},
			}},
		}),
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	Activate(snap)

	cfg, ok := ActiveConfig()
	if !ok || cfg.Hooks.Token.Value() != "tok" {
		t.Errorf("ActiveConfig = %+v, %v", cfg, ok)
	}
	store, ok := ActiveAuthStore("/agents/a")
	if !ok || store.Profiles["openai:default"].Key != "sk" {
		t.Errorf("ActiveAuthStore = %+v, %v", store, ok)
	}
	if _, ok := ActiveAuthStore("/agents/unknown"); ok {
		t.Error("accessor returned a store for a directory outside the snapshot")
	}

	Clear()
	if _, ok := ActiveConfig(); ok {
		t.Error("accessor still reports a snapshot after Clear")
	}
	if _, ok := ActiveAuthStore("/agents/a"); ok {
		t.Error("auth accessor still reports a snapshot after Clear")
	}
}

func TestActivate_ReplacesPriorSnapshot(t *testing.T) {
	t.Cleanup(Clear)

	first := &Snapshot{ID: "first", Config: &config.Config{}}
	second := &Snapshot{ID: "second", Config: &config.Config{}}

	Activate(first)
	Activate(second)

	if got := Active(); got == nil || got.ID != "second" {
		t.Errorf("Active = %+v, want the second snapshot", got)
	}
}
