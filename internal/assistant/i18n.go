package assistant

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Replies. The English text doubles as the fallback when a locale lacks a key.
var (
	msgHello          = &i18n.Message{ID: "reply_hello", Other: "How can I help you?"}
	msgBye            = &i18n.Message{ID: "reply_bye", Other: "Good bye!"}
	msgInvalidCommand = &i18n.Message{ID: "reply_invalid_command", Other: "Invalid command."}
	msgContactAdded   = &i18n.Message{ID: "reply_contact_added", Other: "Contact added."}
	msgContactUpdated = &i18n.Message{ID: "reply_contact_updated", Other: "Contact updated."}
	msgPhoneRemoved   = &i18n.Message{ID: "reply_phone_removed", Other: "Phone removed."}
	msgNoContacts     = &i18n.Message{ID: "reply_no_contacts", Other: "No contacts."}
	msgBirthdayAdded  = &i18n.Message{ID: "reply_birthday_added", Other: "Birthday added."}
	msgBirthdayShow   = &i18n.Message{ID: "reply_birthday_show", Other: "Birthday {{.Name}} : {{.Date}}"}
	msgNoBirthdays    = &i18n.Message{ID: "reply_no_birthdays", Other: "No birthdays in the next {{.Days}} days."}
	msgImported       = &i18n.Message{ID: "reply_imported", Other: "Imported {{.Count}} contacts."}
	msgHelp           = &i18n.Message{ID: "reply_help", Other: "Commands: hello, add, change, phone, remove-phone, all, add-birthday, show-birthday, birthdays, delete, export, calendar, import, close, exit"}

	msgErrPhone    = &i18n.Message{ID: "err_phone_format", Other: "Phone number must contain exactly 10 digits."}
	msgErrDate     = &i18n.Message{ID: "err_date_format", Other: "Invalid date format. Use DD.MM.YYYY"}
	msgErrNotFound = &i18n.Message{ID: "err_contact_not_found", Other: "Contact not defined!"}
	msgErrMissing  = &i18n.Message{ID: "err_missing_argument", Other: "Enter the argument for the command"}
	msgErrWindow   = &i18n.Message{ID: "err_invalid_window", Other: "The number of days must be a positive integer."}
	msgErrInternal = &i18n.Message{ID: "err_internal", Other: "Something went wrong. Check logs."}

	msgEventSummary = &i18n.Message{ID: "event_summary", Other: "Birthday: {{.Name}}"}
)

var allMessages = []*i18n.Message{
	msgHello, msgBye, msgInvalidCommand, msgContactAdded, msgContactUpdated,
	msgPhoneRemoved, msgNoContacts, msgBirthdayAdded, msgBirthdayShow,
	msgNoBirthdays, msgImported, msgHelp,
	msgErrPhone, msgErrDate, msgErrNotFound, msgErrMissing, msgErrWindow, msgErrInternal,
	msgEventSummary,
}

// Translator renders replies in one language.
type Translator struct {
	Languages []string // languages found in the embedded locales
	localizer *i18n.Localizer
}

// NewTranslator loads every embedded locale and selects lang.
func NewTranslator(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	tr := &Translator{}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		tr.Languages = append(tr.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	tr.localizer = i18n.NewLocalizer(bundle, lang)
	return tr
}

// Msg translates m with optional template data, falling back to m's English text.
func (t *Translator) Msg(m *i18n.Message, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: m,
		TemplateData:   data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, m.ID,
			config.LogKeyError, err,
		)
		if msg == "" {
			return m.Other
		}
	}
	return msg
}
