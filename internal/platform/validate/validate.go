// Package validate wraps a singleton go-playground validator with english
// translations. Field names in messages come from the `env` struct tag so a
// failure points at the variable the operator has to fix
package validate

import (
	"net"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "formmigrate/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// Svc holds the validator and its translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *Svc
)

// Init initializes the singleton validator with english translations and env tag names
func Init() *Svc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("env")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerHostPort(v, trans)
		registerRegexp(v, trans)

		vSvc = &Svc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *Svc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// Struct validates s and maps the first failure to a configuration error
// carrying the offending field
func Struct(s any) error {
	err := Get().Validator.Struct(s)
	if err == nil {
		return nil
	}
	field, msg := FieldAndMessage(err)
	out := perr.Newf(perr.ErrorCodeConfig, "%s", msg)
	if field != "" {
		out = perr.WithField(out, field)
	}
	return out
}

// FieldAndMessage returns the first field and translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// hostport accepts host:port with a non-empty port
func isHostPort(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	host, port, err := net.SplitHostPort(s)
	return err == nil && port != "" && (host != "" || strings.HasPrefix(s, ":"))
}

// regexp accepts a string or every element of a string slice that compiles
func isRegexp(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		_, err := regexp.Compile(f.String())
		return err == nil
	case reflect.Slice:
		for i := 0; i < f.Len(); i++ {
			if _, err := regexp.Compile(f.Index(i).String()); err != nil {
				return false
			}
		}
		return true
	}
	return false
}

func registerHostPort(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("host_port", isHostPort)
	_ = v.RegisterTranslation("host_port", trans,
		func(ut ut.Translator) error {
			return ut.Add("host_port", "{0} must be host:port", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("host_port", fe.Field())
			return msg
		},
	)
}

func registerRegexp(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("regexp", isRegexp)
	_ = v.RegisterTranslation("regexp", trans,
		func(ut ut.Translator) error {
			return ut.Add("regexp", "{0} must contain valid regular expressions", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("regexp", fe.Field())
			return msg
		},
	)
}
