// Package app holds the state shared by command and event handlers.
package app

import (
	"fmt"

	"github.com/TambayanDev/TambayanBot/internal/tracker"
	"github.com/TambayanDev/TambayanBot/pkg/config"
	"github.com/TambayanDev/TambayanBot/pkg/journal"
	"github.com/TambayanDev/TambayanBot/pkg/store"
)

// State is passed to every handler in place of package globals.
type State struct {
	Config    *config.Config
	Tracker   *tracker.Tracker
	AFKConfig *store.AFKConfigStore
	Welcome   *store.WelcomeStore
	Blacklist *store.BlacklistStore
	Journal   *journal.Journal
}

// New opens the JSON documents under cfg.DataDir. A nil journal records
// nothing.
func New(cfg *config.Config, j *journal.Journal) (*State, error) {
	afkCfg, err := store.OpenAFKConfig(cfg.DataPath(config.AFKConfigFile))
	if err != nil {
		return nil, fmt.Errorf("afk config: %w", err)
	}
	welcome, err := store.OpenWelcome(cfg.DataPath(config.WelcomeConfigFile), cfg.WelcomeChannelID)
	if err != nil {
		return nil, fmt.Errorf("welcome config: %w", err)
	}
	if j == nil {
		j = journal.New()
	}

	return &State{
		Config:    cfg,
		Tracker:   tracker.New(),
		AFKConfig: afkCfg,
		Welcome:   welcome,
		Blacklist: store.NewBlacklist(cfg.DataPath(config.BlacklistFile)),
		Journal:   j,
	}, nil
}
