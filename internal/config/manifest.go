package config

import "sort"

// slot is one fixed location in the configuration tree permitted to hold a
// secret reference.
type slot struct {
	path  string
	value *SecretValue
}

// secretSlots enumerates the manifest against a concrete configuration.
// The list below is the entire closed set: resolution never walks the tree
// generically, so no field becomes secret-bearing by accident and cost is
// proportional to the manifest, not the config. Absent slots (nil pointers)
// are skipped — the manifest declares possible locations, not required ones.
// Map-keyed slots are emitted in sorted key order for deterministic errors.
func secretSlots(cfg *Config) []slot {
	var slots []slot
	add := func(path string, v *SecretValue) {
		if v != nil {
			slots = append(slots, slot{path: path, value: v})
		}
	}

	for _, name := range sortedKeys(cfg.Models.Providers) {
		add("models.providers."+name+".apiKey", cfg.Models.Providers[name].APIKey)
	}
	for _, name := range sortedKeys(cfg.Skills) {
		add("skills."+name+".apiKey", cfg.Skills[name].APIKey)
	}
	if cfg.Hooks != nil {
		add("hooks.token", cfg.Hooks.Token)
	}
	if cfg.Gateway != nil {
		add("gateway.authToken", cfg.Gateway.AuthToken)
	}
	if tg := cfg.Channels.Telegram; tg != nil {
		add("channels.telegram.botToken", tg.BotToken)
		for _, name := range sortedKeys(tg.Accounts) {
			add("channels.telegram.accounts."+name+".botToken", tg.Accounts[name].BotToken)
		}
	}
	if dc := cfg.Channels.Discord; dc != nil {
		add("channels.discord.botToken", dc.BotToken)
	}
	if sl := cfg.Channels.Slack; sl != nil {
		add("channels.slack.botToken", sl.BotToken)
		add("channels.slack.appToken", sl.AppToken)
	}
	for _, name := range sortedKeys(cfg.Tools) {
		add("tools."+name+".apiKey", cfg.Tools[name].APIKey)
	}

	return slots
}

// SecretSlotPaths lists the populated manifest slots of cfg, for
// diagnostics.
func SecretSlotPaths(cfg *Config) []string {
	slots := secretSlots(cfg)
	paths := make([]string, len(slots))
	for i, s := range slots {
		paths[i] = s.path
	}
	return paths
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
