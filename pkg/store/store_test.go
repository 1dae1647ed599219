package store

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TambayanDev/TambayanBot/pkg/models"
)

func TestDocumentMissingFileYieldsDefault(t *testing.T) {
	doc := NewDocument(filepath.Join(t.TempDir(), "missing.json"), func() []string { return []string{"seed"} })

	got, err := doc.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"seed"}, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentSaveIndentsTwoSpaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := NewDocument(path, func() []string { return nil })

	if err := doc.Save([]string{"a", "b"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[\n  \"a\",\n  \"b\"\n]"; string(raw) != want {
		t.Errorf("file = %q, want %q", raw, want)
	}
}

func TestDocumentCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	doc := NewDocument(path, func() []string { return []string{} })
	if _, err := doc.Load(); err == nil {
		t.Error("Load() should fail on malformed JSON")
	}
}

func TestAFKConfigToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afk_config.json")
	s, err := OpenAFKConfig(path)
	if err != nil {
		t.Fatalf("OpenAFKConfig() error = %v", err)
	}

	present, err := s.ToggleIgnoredChannel("c1")
	if err != nil || !present {
		t.Fatalf("ToggleIgnoredChannel(c1) = %v, %v; want true, nil", present, err)
	}
	if !s.IsIgnoredChannel("c1") {
		t.Error("c1 should be ignored after toggle")
	}

	present, err = s.ToggleIgnoredChannel("c1")
	if err != nil || present {
		t.Fatalf("second ToggleIgnoredChannel(c1) = %v, %v; want false, nil", present, err)
	}
	if s.IsIgnoredChannel("c1") {
		t.Error("c1 should not be ignored after second toggle")
	}

	if _, err := s.ToggleAllowedRole("r1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleIgnoredRole("r2"); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenAFKConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := models.AFKConfig{AllowedRoles: []string{"r1"}, IgnoredChannels: []string{}, IgnoredRoles: []string{"r2"}}
	if diff := cmp.Diff(want, reopened.Get()); diff != "" {
		t.Errorf("persisted config mismatch (-want +got):\n%s", diff)
	}
}

func TestAFKConfigRoleChecks(t *testing.T) {
	s, err := OpenAFKConfig(filepath.Join(t.TempDir(), "afk_config.json"))
	if err != nil {
		t.Fatal(err)
	}

	if !s.Allows(nil) {
		t.Error("empty allowed set should admit everyone")
	}
	s.ToggleAllowedRole("vip")
	if s.Allows([]string{"member"}) {
		t.Error("member without allowed role should be refused")
	}
	if !s.Allows([]string{"member", "vip"}) {
		t.Error("member holding allowed role should be admitted")
	}

	s.ToggleIgnoredRole("bots")
	if !s.HasIgnoredRole([]string{"bots"}) || s.HasIgnoredRole([]string{"vip"}) {
		t.Error("HasIgnoredRole mismatch")
	}
}

func TestAFKConfigGetReturnsCopy(t *testing.T) {
	s, err := OpenAFKConfig(filepath.Join(t.TempDir(), "afk_config.json"))
	if err != nil {
		t.Fatal(err)
	}
	s.ToggleIgnoredChannel("c1")

	cfg := s.Get()
	cfg.IgnoredChannels[0] = "mutated"
	if !s.IsIgnoredChannel("c1") {
		t.Error("mutating Get() result changed the store")
	}
}

func TestAFKConfigSaveFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenAFKConfig(filepath.Join(dir, "sub", "afk_config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleIgnoredChannel("c1"); err == nil {
		t.Fatal("expected write into missing directory to fail")
	}
	if s.IsIgnoredChannel("c1") {
		t.Error("failed save should not change in-memory state")
	}
}

func TestWelcomeDefaultsAndUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "welcome_config.json")
	s, err := OpenWelcome(path, "996579657648455720")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(models.DefaultWelcomeConfig("996579657648455720"), s.Get()); diff != "" {
		t.Errorf("default template mismatch (-want +got):\n%s", diff)
	}

	title := "Hi {user}"
	color := 0xff5733
	got, err := s.Update(WelcomeUpdate{Title: &title, Color: &color})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != title || got.Color != color || got.Description != models.DefaultWelcomeDescription {
		t.Errorf("Update() = %+v; only title and color should change", got)
	}

	reopened, err := OpenWelcome(path, "other")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, reopened.Get()); diff != "" {
		t.Errorf("persisted template mismatch (-want +got):\n%s", diff)
	}
}

func TestWelcomeUpdateEmpty(t *testing.T) {
	if !(WelcomeUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	s := ""
	if (WelcomeUpdate{Footer: &s}).Empty() {
		t.Error("update with footer should not be empty")
	}
}

func TestBlacklistAddRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.json")
	s := NewBlacklist(path)

	word, err := s.Add("  BadWord ")
	if err != nil || word != "badword" {
		t.Fatalf("Add() = %q, %v; want badword, nil", word, err)
	}
	if _, err := s.Add("badword"); !stderrors.Is(err, ErrWordExists) {
		t.Errorf("Add(duplicate) error = %v, want ErrWordExists", err)
	}
	if _, err := s.Remove("other"); !stderrors.Is(err, ErrWordNotFound) {
		t.Errorf("Remove(absent) error = %v, want ErrWordNotFound", err)
	}
	if _, err := s.Add("   "); !stderrors.Is(err, ErrEmptyWord) {
		t.Errorf("Add(blank) error = %v, want ErrEmptyWord", err)
	}

	if _, err := s.Remove("BADWORD"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	words, err := s.Words()
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 0 {
		t.Errorf("Words() = %v, want empty", words)
	}
}

func TestBlacklistMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.json")
	s := NewBlacklist(path)
	s.Add("foo")
	s.Add("bar")

	tests := []struct {
		content string
		want    string
		ok      bool
	}{
		{"hello FOOBAR", "foo", true},
		{"crowbar", "bar", true},
		{"clean message", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok, err := s.Match(tt.content)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q) = %q, %v; want %q, %v", tt.content, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBlacklistReadsFileEveryTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.json")
	s := NewBlacklist(path)

	if _, ok, _ := s.Match("spam here"); ok {
		t.Fatal("empty blacklist should not match")
	}
	if err := os.WriteFile(path, []byte(`["SPAM"]`), 0644); err != nil {
		t.Fatal(err)
	}
	word, ok, err := s.Match("spam here")
	if err != nil || !ok || word != "spam" {
		t.Errorf("Match after external edit = %q, %v, %v; want spam, true, nil", word, ok, err)
	}
}

func TestBlacklistFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.json")
	s := NewBlacklist(path)
	s.Add("one")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "[\n  \"one\"") {
		t.Errorf("blacklist.json = %q, want indented array", raw)
	}
}
