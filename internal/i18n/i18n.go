package i18n

import (
	"embed"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// LangEnvVar selects the CLI output language (e.g., "es"). When unset, the
// LANG environment variable is consulted, and English is the fallback.
const LangEnvVar = "DOTJSON_LANG"

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	once      sync.Once
)

func initBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return
	}
	for _, entry := range entries {
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			continue
		}
		bundle.MustParseMessageFileBytes(data, entry.Name())
	}

	applyLanguage("")
}

// applyLanguage rebuilds the localizer. An empty lang means environment
// detection.
func applyLanguage(lang string) {
	if lang != "" {
		localizer = i18n.NewLocalizer(bundle, lang)
		return
	}
	localizer = i18n.NewLocalizer(bundle, detectLanguages()...)
}

// detectLanguages builds the preference order: DOTJSON_LANG, then the LANG
// environment variable, then English.
func detectLanguages() []string {
	var langs []string
	if lang := os.Getenv(LangEnvVar); lang != "" {
		langs = append(langs, lang)
	}
	if lang := os.Getenv("LANG"); lang != "" {
		// LANG carries values like "es_ES.UTF-8"; the tag is the leading part
		if i := strings.IndexAny(lang, "._"); i > 0 {
			lang = lang[:i]
		}
		langs = append(langs, lang)
	}
	return append(langs, "en")
}

// SetLanguage overrides the detected language. An empty value restores
// environment detection. Call it during startup; it is not safe to call
// concurrently with T.
func SetLanguage(lang string) {
	once.Do(initBundle)
	applyLanguage(lang)
}

// T localizes a message by ID. Unknown IDs come back unchanged, mirroring
// how Translate falls back to the key, so output stays usable when a locale
// file lags behind the code.
func T(messageID string) string {
	once.Do(initBundle)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// Tf localizes a message with template data
func Tf(messageID string, data map[string]any) string {
	once.Do(initBundle)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// Tn localizes a message with a plural count, available in the message as
// {{.PluralCount}}
func Tn(messageID string, count int) string {
	once.Do(initBundle)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:   messageID,
		PluralCount: count,
	})
	if err != nil {
		return messageID
	}
	return msg
}
