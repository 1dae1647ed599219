package models

import "time"

// EventKind names a moderation journal entry
type EventKind string

const (
	EventBan          EventKind = "ban"
	EventKick         EventKind = "kick"
	EventTimeout      EventKind = "timeout"
	EventWarn         EventKind = "warn"
	EventAFKRemove    EventKind = "afk_remove"
	EventBlacklistAdd EventKind = "blacklist_add"
	EventBlacklistDel EventKind = "blacklist_remove"
	EventReport       EventKind = "report"
	EventFiltered     EventKind = "filtered_message"
)

// ModerationEvent is one entry in the moderation journal ("modlogs")
type ModerationEvent struct {
	ID          string    `bson:"_id" json:"id"`
	Kind        EventKind `bson:"kind" json:"kind"`
	GuildID     string    `bson:"guildId" json:"guildId"`
	ModeratorID string    `bson:"moderatorId,omitempty" json:"moderatorId,omitempty"`
	TargetID    string    `bson:"targetId,omitempty" json:"targetId,omitempty"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Detail      string    `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
