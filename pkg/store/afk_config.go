package store

import (
	"slices"
	"sync"

	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// AFKConfigStore holds the AFK settings in memory and persists every change.
type AFKConfigStore struct {
	doc *Document[models.AFKConfig]
	mu  sync.RWMutex
	cfg models.AFKConfig
}

// OpenAFKConfig loads afk_config.json once; later reads are served from memory.
func OpenAFKConfig(path string) (*AFKConfigStore, error) {
	doc := NewDocument(path, func() models.AFKConfig {
		return models.AFKConfig{AllowedRoles: []string{}, IgnoredChannels: []string{}, IgnoredRoles: []string{}}
	})
	cfg, err := doc.Load()
	if err != nil {
		return nil, err
	}
	return &AFKConfigStore{doc: doc, cfg: cfg.Clone()}, nil
}

// Get returns a copy of the current configuration.
func (s *AFKConfigStore) Get() models.AFKConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// ToggleAllowedRole adds the role when absent and removes it otherwise.
// It reports whether the role is now present.
func (s *AFKConfigStore) ToggleAllowedRole(roleID string) (bool, error) {
	return s.toggle(func(c *models.AFKConfig) *[]string { return &c.AllowedRoles }, roleID)
}

// ToggleIgnoredChannel flips membership of a channel in the ignored set.
func (s *AFKConfigStore) ToggleIgnoredChannel(channelID string) (bool, error) {
	return s.toggle(func(c *models.AFKConfig) *[]string { return &c.IgnoredChannels }, channelID)
}

// ToggleIgnoredRole flips membership of a role in the ignored set.
func (s *AFKConfigStore) ToggleIgnoredRole(roleID string) (bool, error) {
	return s.toggle(func(c *models.AFKConfig) *[]string { return &c.IgnoredRoles }, roleID)
}

func (s *AFKConfigStore) toggle(field func(*models.AFKConfig) *[]string, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.Clone()
	set := field(&next)
	present := true
	if i := slices.Index(*set, id); i >= 0 {
		*set = slices.Delete(*set, i, i+1)
		present = false
	} else {
		*set = append(*set, id)
	}

	if err := s.doc.Save(next); err != nil {
		return !present, err
	}
	s.cfg = next
	return present, nil
}

// IsIgnoredChannel reports whether messages in the channel leave AFK intact.
func (s *AFKConfigStore) IsIgnoredChannel(channelID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.cfg.IgnoredChannels, channelID)
}

// HasIgnoredRole reports whether any of roles is in the ignored set.
func (s *AFKConfigStore) HasIgnoredRole(roles []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsAny(s.cfg.IgnoredRoles, roles)
}

// Allows reports whether a member holding roles may set AFK. An empty
// allowed set admits everyone.
func (s *AFKConfigStore) Allows(roles []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.cfg.AllowedRoles) == 0 {
		return true
	}
	return containsAny(s.cfg.AllowedRoles, roles)
}

func containsAny(set, candidates []string) bool {
	for _, c := range candidates {
		if slices.Contains(set, c) {
			return true
		}
	}
	return false
}
