package module

import "taskpulse/internal/platform/config"

// Config carries assist module settings
type Config struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	AudioModel string

	// PlaceholderFallback degrades prediction gateway failures to a
	// single low-confidence placeholder suggestion
	PlaceholderFallback bool
}

// FromConfig reads assist settings from the service view
func FromConfig(cfg config.Conf) Config {
	v := cfg.Prefix("OPENAI_")
	return Config{
		APIKey:              v.MustString("API_KEY"),
		BaseURL:             v.MayString("BASE_URL", ""),
		ChatModel:           v.MayString("CHAT_MODEL", ""),
		AudioModel:          v.MayString("AUDIO_MODEL", ""),
		PlaceholderFallback: cfg.MayBool("ASSIST_PLACEHOLDER_FALLBACK", false),
	}
}
