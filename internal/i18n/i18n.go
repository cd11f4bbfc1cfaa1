// Package i18n provides the translation tables for user-facing text.
// The core treats translation as a collaborator: it calls T with a message
// key and renders whatever comes back.
package i18n

import (
	"fmt"
	"os"
	"strings"
)

// Supported languages.
const (
	LangEN   = "en"
	LangPtBR = "pt-BR"
)

// currentLang holds the current language setting
var currentLang = LangPtBR

// messages stores all translations
var messages = make(map[string]map[string]string)

// Init initializes the i18n system with the specified language.
func Init(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))

	switch lang {
	case "en", "en-us", "english":
		currentLang = LangEN
	case "pt", "pt-br", "pt_br", "portuguese", "português":
		currentLang = LangPtBR
	default:
		// Default to Brazilian Portuguese, the demo's home market.
		currentLang = LangPtBR
	}

	loadMessages()
}

// SetLanguage changes the current language.
func SetLanguage(lang string) {
	Init(lang)
}

// GetLanguage returns the current language.
func GetLanguage() string {
	return currentLang
}

// T returns the translated message for the given key.
// Falls back to English, then to the key itself.
func T(key string) string {
	if msg, ok := messages[currentLang][key]; ok {
		return msg
	}
	if msg, ok := messages[LangEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf returns the translated and formatted message.
func Sprintf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

func loadMessages() {
	messages[LangEN] = make(map[string]string)
	messages[LangPtBR] = make(map[string]string)

	loadEnglishMessages()
	loadPortugueseMessages()
}

// GetSupportedLanguages returns the supported language codes.
func GetSupportedLanguages() []string {
	return []string{LangEN, LangPtBR}
}

// IsLanguageSupported checks if a language is supported.
func IsLanguageSupported(lang string) bool {
	for _, supported := range GetSupportedLanguages() {
		if strings.EqualFold(strings.TrimSpace(lang), supported) {
			return true
		}
	}
	return false
}

func init() {
	if envLang := os.Getenv("VOYAGO_LANG"); envLang != "" {
		Init(envLang)
	} else {
		Init(LangPtBR)
	}
}
