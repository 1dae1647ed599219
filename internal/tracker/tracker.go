// Package tracker keeps AFK records and warning counters in memory and
// applies the nickname changes that go with them.
//
// Operations that both mutate state and rename a member report an Outcome:
// Applied when both happened, Partial when state changed but the rename was
// rejected, Failed when nothing changed.
package tracker

import (
	"maps"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/TambayanDev/TambayanBot/pkg/models"
)

const (
	// AFKPrefix marks the nickname of a member who is away.
	AFKPrefix = "[AFK] "
	// WarningMarker is appended once per warning, up to two.
	WarningMarker = "🚩"
	// MaxNicknameLength is Discord's nickname limit in characters.
	MaxNicknameLength = 32
)

// Renamer changes guild nicknames. *discordgo.Session satisfies it.
type Renamer interface {
	GuildMemberNickname(guildID, userID, nickname string, options ...discordgo.RequestOption) error
}

type Result int

const (
	Applied Result = iota
	Partial
	Failed
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case Partial:
		return "partial"
	default:
		return "failed"
	}
}

// Outcome is the result of a two-phase operation. Err is set unless Result
// is Applied.
type Outcome struct {
	Result Result
	Err    error
}

func (o Outcome) OK() bool { return o.Result == Applied }

// Tracker is safe for concurrent use. Nickname calls are made without the
// lock held, so two events for the same member may interleave renames.
type Tracker struct {
	mu       sync.Mutex
	afk      map[string]models.AFKRecord
	warnings map[string]int
	now      func() time.Time
}

func New() *Tracker {
	return &Tracker{
		afk:      make(map[string]models.AFKRecord),
		warnings: make(map[string]int),
		now:      time.Now,
	}
}

// DisplayName is the name a member is shown as: the guild nickname, then
// the global display name, then the username.
func DisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

// SetAFK marks the member away and renames them to "[AFK] <name>".
// The rename happens first; if it is rejected no record is created.
// Calling SetAFK while already away keeps the originally captured names and
// only replaces the message and timestamp.
func (t *Tracker) SetAFK(r Renamer, guildID string, m *discordgo.Member, message string) (models.AFKRecord, Outcome) {
	if message == "" {
		message = models.DefaultAFKMessage
	}

	t.mu.Lock()
	rec, exists := t.afk[m.User.ID]
	t.mu.Unlock()

	if !exists {
		rec = models.AFKRecord{
			UserID:              m.User.ID,
			OriginalNickname:    strings.TrimPrefix(m.Nick, AFKPrefix),
			OriginalDisplayName: strings.TrimPrefix(DisplayName(m), AFKPrefix),
		}
	}
	rec.Message = message
	rec.Since = t.now()

	if err := r.GuildMemberNickname(guildID, m.User.ID, AFKNickname(rec.OriginalDisplayName)); err != nil {
		return rec, Outcome{Result: Failed, Err: err}
	}

	t.mu.Lock()
	t.afk[m.User.ID] = rec
	t.mu.Unlock()
	return rec, Outcome{Result: Applied}
}

// ClearAFK deletes the user's record and restores their nickname. The bool
// is false when the user was not away, in which case nothing happens.
func (t *Tracker) ClearAFK(r Renamer, guildID, userID string) (models.AFKRecord, bool, Outcome) {
	t.mu.Lock()
	rec, ok := t.afk[userID]
	if ok {
		delete(t.afk, userID)
	}
	count := t.warnings[userID]
	t.mu.Unlock()

	if !ok {
		return rec, false, Outcome{Result: Failed}
	}

	if err := r.GuildMemberNickname(guildID, userID, restoredNickname(rec, count)); err != nil {
		return rec, true, Outcome{Result: Partial, Err: err}
	}
	return rec, true, Outcome{Result: Applied}
}

func restoredNickname(rec models.AFKRecord, warnings int) string {
	if warnings == 0 {
		return rec.OriginalNickname
	}
	base := rec.OriginalNickname
	if base == "" {
		base = rec.OriginalDisplayName
	}
	return WarningNickname(base, warnings)
}

// Warn increments the member's counter and marks their nickname. The
// counter is kept even when the rename fails.
func (t *Tracker) Warn(r Renamer, guildID string, m *discordgo.Member) (int, Outcome) {
	t.mu.Lock()
	t.warnings[m.User.ID]++
	count := t.warnings[m.User.ID]
	t.mu.Unlock()

	if err := r.GuildMemberNickname(guildID, m.User.ID, WarningNickname(DisplayName(m), count)); err != nil {
		return count, Outcome{Result: Partial, Err: err}
	}
	return count, Outcome{Result: Applied}
}

// AFK returns the user's live record.
func (t *Tracker) AFK(userID string) (models.AFKRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.afk[userID]
	return rec, ok
}

// AFKUsers returns every live record, oldest first.
func (t *Tracker) AFKUsers() []models.AFKRecord {
	t.mu.Lock()
	out := make([]models.AFKRecord, 0, len(t.afk))
	for _, rec := range t.afk {
		out = append(out, rec)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Since.Equal(out[j].Since) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Since.Before(out[j].Since)
	})
	return out
}

// Warnings returns the user's warning count.
func (t *Tracker) Warnings(userID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.warnings[userID]
}

// WarningCounts returns a snapshot of every counter.
func (t *Tracker) WarningCounts() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.warnings)
}

// AFKNickname builds "[AFK] <name>" within the nickname limit.
func AFKNickname(name string) string {
	return truncate(AFKPrefix+name, MaxNicknameLength)
}

// WarningNickname returns base with any existing markers replaced by one
// marker for a single warning or two for more.
func WarningNickname(base string, count int) string {
	base = strings.TrimRight(strings.ReplaceAll(base, WarningMarker, ""), " ")
	suffix := " " + WarningMarker
	if count >= 2 {
		suffix += WarningMarker
	}
	return truncate(base, MaxNicknameLength-utf8.RuneCountInString(suffix)) + suffix
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
