package network

import (
	"log/slog"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	cfgValidator = validator.New()
	// OptErrTranslations is the english translator for the validation
	// errors of Limits.
	OptErrTranslations ut.Translator
)

func init() {
	enLocale := en.New()
	uniTrans := ut.New(enLocale, enLocale)
	var ok bool
	OptErrTranslations, ok = uniTrans.GetTranslator("en")
	if !ok {
		panic("internal error: failed to init translator")
	}
	if err := entranslations.RegisterDefaultTranslations(cfgValidator, OptErrTranslations); err != nil {
		slog.Warn("failed to register translations", "error", err)
	}
}

// Validate checks if the limits are valid.
func (l *Limits) Validate() error {
	return cfgValidator.Struct(l)
}

// Apply copies the non-zero values from other to this Limits struct.
func (l *Limits) Apply(other Limits) error {
	if err := other.Validate(); err != nil {
		return err
	}
	*l = other
	return nil
}
