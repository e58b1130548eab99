package contacts

import (
	"errors"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Error kinds surfaced to the command session. Callers match them with errors.Is.
var (
	ErrInvalidPhoneFormat = errors.New(config.ErrPhoneFormat)
	ErrInvalidDateFormat  = errors.New(config.ErrDateFormat)
	ErrContactNotFound    = errors.New(config.ErrNotFound)
	ErrMissingArgument    = errors.New(config.ErrMissingArg)
)
