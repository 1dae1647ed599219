package store

import (
	stderrors "errors"
	"slices"
	"strings"
	"sync"
)

var (
	ErrWordExists   = stderrors.New("word already blacklisted")
	ErrWordNotFound = stderrors.New("word not blacklisted")
	ErrEmptyWord    = stderrors.New("word is empty")
)

// BlacklistStore reads blacklist.json on every call so edits made to the
// file by hand apply to the next message.
type BlacklistStore struct {
	doc *Document[[]string]
	// mu serializes read-modify-write cycles from commands.
	mu sync.Mutex
}

func NewBlacklist(path string) *BlacklistStore {
	return &BlacklistStore{doc: NewDocument(path, func() []string { return []string{} })}
}

// NormalizeWord lowercases and trims a blacklist entry.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Words returns the entries in file order.
func (s *BlacklistStore) Words() ([]string, error) {
	return s.doc.Load()
}

// Add appends word. It returns ErrWordExists without touching the file
// when the word is already present.
func (s *BlacklistStore) Add(word string) (string, error) {
	word = NormalizeWord(word)
	if word == "" {
		return word, ErrEmptyWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.doc.Load()
	if err != nil {
		return word, err
	}
	if slices.Contains(words, word) {
		return word, ErrWordExists
	}
	return word, s.doc.Save(append(words, word))
}

// Remove deletes word. It returns ErrWordNotFound when absent.
func (s *BlacklistStore) Remove(word string) (string, error) {
	word = NormalizeWord(word)
	if word == "" {
		return word, ErrEmptyWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.doc.Load()
	if err != nil {
		return word, err
	}
	if !slices.Contains(words, word) {
		return word, ErrWordNotFound
	}
	kept := slices.DeleteFunc(words, func(w string) bool { return w == word })
	return word, s.doc.Save(kept)
}

// Match returns the first entry, in file order, contained in content.
// Comparison is case-insensitive.
func (s *BlacklistStore) Match(content string) (string, bool, error) {
	words, err := s.doc.Load()
	if err != nil {
		return "", false, err
	}
	content = strings.ToLower(content)
	for _, w := range words {
		w = strings.ToLower(w)
		if w != "" && strings.Contains(content, w) {
			return w, true, nil
		}
	}
	return "", false, nil
}
