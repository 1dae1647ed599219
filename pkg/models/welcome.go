package models

// Welcome template defaults
const (
	DefaultWelcomeTitle       = "Welcome to {server}!"
	DefaultWelcomeDescription = "Hey {user}, we're glad you joined! Make yourself at home and enjoy!"
	DefaultWelcomeFooter      = "We now have {member_count} members!"
	DefaultWelcomeColor       = 0x00ff00
	// FallbackWelcomeColor is used when the stored color is zero.
	FallbackWelcomeColor = 0xd2b3b3
)

// WelcomeConfig is the persisted welcome template (welcome_config.json).
// Text fields may contain {server}, {user}, {user_tag} and {member_count}.
type WelcomeConfig struct {
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Footer      string `json:"footer"`
	Color       int    `json:"color"`
}

// DefaultWelcomeConfig returns the template used when no file exists.
func DefaultWelcomeConfig(channelID string) WelcomeConfig {
	return WelcomeConfig{
		ChannelID:   channelID,
		Title:       DefaultWelcomeTitle,
		Description: DefaultWelcomeDescription,
		Footer:      DefaultWelcomeFooter,
		Color:       DefaultWelcomeColor,
	}
}
