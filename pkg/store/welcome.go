package store

import (
	"sync"

	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// WelcomeUpdate carries the fields /setwelcome supplied. Nil fields are kept.
type WelcomeUpdate struct {
	Title       *string
	Description *string
	Footer      *string
	Color       *int
}

// Empty reports whether the update changes nothing.
func (u WelcomeUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Footer == nil && u.Color == nil
}

// WelcomeStore holds the welcome template in memory.
type WelcomeStore struct {
	doc *Document[models.WelcomeConfig]
	mu  sync.RWMutex
	cfg models.WelcomeConfig
}

// OpenWelcome loads welcome_config.json, falling back to the default
// template addressed at defaultChannelID.
func OpenWelcome(path, defaultChannelID string) (*WelcomeStore, error) {
	doc := NewDocument(path, func() models.WelcomeConfig {
		return models.DefaultWelcomeConfig(defaultChannelID)
	})
	cfg, err := doc.Load()
	if err != nil {
		return nil, err
	}
	return &WelcomeStore{doc: doc, cfg: cfg}, nil
}

// Get returns the current template.
func (s *WelcomeStore) Get() models.WelcomeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update overwrites the supplied fields and persists the result.
func (s *WelcomeStore) Update(u WelcomeUpdate) (models.WelcomeConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	if u.Title != nil {
		next.Title = *u.Title
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.Footer != nil {
		next.Footer = *u.Footer
	}
	if u.Color != nil {
		next.Color = *u.Color
	}

	if err := s.doc.Save(next); err != nil {
		return s.cfg, err
	}
	s.cfg = next
	return next, nil
}
