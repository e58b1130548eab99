package assistant

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
)

// command handles one verb. A returned error is mapped to its message by the session.
type command func(ctx context.Context, s *Session, args []string) (string, error)

var commands = map[string]command{
	config.CmdHello:           cmdHello,
	config.CmdHelp:            cmdHelp,
	config.CmdAdd:             cmdAdd,
	config.CmdChange:          cmdChange,
	config.CmdPhone:           cmdPhone,
	config.CmdRemovePhone:     cmdRemovePhone,
	config.CmdAll:             cmdAll,
	config.CmdAddBirthday:     cmdAddBirthday,
	config.CmdAddBirthdayAlt:  cmdAddBirthday,
	config.CmdShowBirthday:    cmdShowBirthday,
	config.CmdShowBirthdayAlt: cmdShowBirthday,
	config.CmdBirthdays:       cmdBirthdays,
	config.CmdDelete:          cmdDelete,
	config.CmdExport:          cmdExport,
	config.CmdCalendar:        cmdCalendar,
	config.CmdImport:          cmdImport,
}

func cmdHello(_ context.Context, s *Session, _ []string) (string, error) {
	return s.Translator.Msg(msgHello, nil), nil
}

func cmdHelp(_ context.Context, s *Session, _ []string) (string, error) {
	return s.Translator.Msg(msgHelp, nil), nil
}

// cmdAdd finds or creates the contact, then appends the optional phone.
// The phone is checked first so a bad number never leaves an empty contact behind.
func cmdAdd(_ context.Context, s *Session, args []string) (string, error) {
	name, err := nameArg(args)
	if err != nil {
		return "", err
	}

	var phone string
	if len(args) > 1 {
		p, err := contacts.NewPhoneNumber(args[1])
		if err != nil {
			return "", err
		}
		phone = p.String()
	}

	reply := msgContactUpdated
	record, ok := s.Directory.Find(name)
	if !ok {
		record = contacts.NewRecord(name)
		s.Directory.AddRecord(record)
		reply = msgContactAdded
	}
	if phone != "" {
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
	}
	return s.Translator.Msg(reply, nil), nil
}

func cmdChange(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("%s needs name, old and new phone: %w", config.CmdChange, contacts.ErrMissingArgument)
	}
	record, err := s.find(args)
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return s.Translator.Msg(msgContactUpdated, nil), nil
}

func cmdPhone(_ context.Context, s *Session, args []string) (string, error) {
	record, err := s.find(args)
	if err != nil {
		return "", err
	}
	return record.String(), nil
}

func cmdRemovePhone(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%s needs name and phone: %w", config.CmdRemovePhone, contacts.ErrMissingArgument)
	}
	record, err := s.find(args)
	if err != nil {
		return "", err
	}
	record.RemovePhone(args[1])
	return s.Translator.Msg(msgPhoneRemoved, nil), nil
}

func cmdAll(_ context.Context, s *Session, _ []string) (string, error) {
	if s.Directory.Len() == 0 {
		return s.Translator.Msg(msgNoContacts, nil), nil
	}
	return s.Directory.String(), nil
}

// cmdAddBirthday parses the date before the lookup, so a bad date is
// reported even for an unknown contact.
func cmdAddBirthday(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%s needs name and date: %w", config.CmdAddBirthday, contacts.ErrMissingArgument)
	}
	b, err := contacts.ParseBirthday(args[1])
	if err != nil {
		return "", err
	}
	record, err := s.find(args)
	if err != nil {
		return "", err
	}
	record.SetBirthday(b)
	return s.Translator.Msg(msgBirthdayAdded, nil), nil
}

// cmdShowBirthday replies with nothing when the contact has no birthday.
func cmdShowBirthday(_ context.Context, s *Session, args []string) (string, error) {
	record, err := s.find(args)
	if err != nil {
		return "", err
	}
	b, ok := record.Birthday()
	if !ok {
		return "", nil
	}
	return s.Translator.Msg(msgBirthdayShow, map[string]any{
		"Name": record.Name().String(),
		"Date": b.String(),
	}), nil
}

func cmdBirthdays(_ context.Context, s *Session, args []string) (string, error) {
	days, err := s.windowArg(args)
	if err != nil {
		return "", err
	}

	greetings := s.Directory.UpcomingBirthdays(s.Clock.Now(), days)
	if len(greetings) == 0 {
		return s.Translator.Msg(msgNoBirthdays, map[string]any{"Days": days}), nil
	}

	lines := make([]string, len(greetings))
	for i, g := range greetings {
		lines[i] = fmt.Sprintf(config.GreetingFormat, g.Name, g.Date.Format(config.DateFormatDisplay))
	}
	return strings.Join(lines, config.LineSeparator), nil
}

// cmdDelete is silent, whether or not the contact existed.
func cmdDelete(_ context.Context, s *Session, args []string) (string, error) {
	name, err := nameArg(args)
	if err != nil {
		return "", err
	}
	s.Directory.Delete(name)
	return "", nil
}

func cmdExport(_ context.Context, s *Session, _ []string) (string, error) {
	if s.Directory.Len() == 0 {
		return s.Translator.Msg(msgNoContacts, nil), nil
	}
	var buf bytes.Buffer
	if err := engine.EncodeDirectory(&buf, s.Directory); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func cmdCalendar(_ context.Context, s *Session, args []string) (string, error) {
	days, err := s.windowArg(args)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.renderCalendar(&buf, days); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func cmdImport(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%s needs a file or URL: %w", config.CmdImport, contacts.ErrMissingArgument)
	}
	stats, err := s.Importer.Import(ctx, args[0], s.Directory)
	if err != nil {
		return "", err
	}
	return s.Translator.Msg(msgImported, map[string]any{"Count": stats.Imported}), nil
}

// find resolves args[0] to an existing record.
func (s *Session) find(args []string) (*contacts.Record, error) {
	name, err := nameArg(args)
	if err != nil {
		return nil, err
	}
	record, ok := s.Directory.Find(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, contacts.ErrContactNotFound)
	}
	return record, nil
}

// windowArg reads the optional day count, defaulting to the configured window.
func (s *Session) windowArg(args []string) (int, error) {
	if len(args) == 0 {
		return s.WindowDays, nil
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("%q: %w", args[0], ErrInvalidWindow)
	}
	return days, nil
}

func nameArg(args []string) (contacts.Name, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("name: %w", contacts.ErrMissingArgument)
	}
	return contacts.NewName(args[0])
}
