package models

import "time"

// DefaultAFKMessage is used when /afk is invoked without a message.
const DefaultAFKMessage = "AFK"

// AFKRecord describes a user currently marked away
type AFKRecord struct {
	UserID  string    `json:"userId"`
	Message string    `json:"message"`
	Since   time.Time `json:"since"`
	// OriginalNickname is the guild nickname before the AFK rename. Empty
	// means the member had no nickname.
	OriginalNickname string `json:"originalNickname"`
	// OriginalDisplayName is the name the member was shown as at capture time.
	OriginalDisplayName string `json:"originalDisplayName"`
}

// AFKConfig is the persisted AFK behaviour document (afk_config.json)
type AFKConfig struct {
	AllowedRoles    []string `json:"allowedRoles"`
	IgnoredChannels []string `json:"ignoredChannels"`
	IgnoredRoles    []string `json:"ignoredRoles"`
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (c AFKConfig) Clone() AFKConfig {
	return AFKConfig{
		AllowedRoles:    append([]string{}, c.AllowedRoles...),
		IgnoredChannels: append([]string{}, c.IgnoredChannels...),
		IgnoredRoles:    append([]string{}, c.IgnoredRoles...),
	}
}
