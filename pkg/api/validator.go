package api

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	jsonTagName  = "json"
	uriTagName   = "uri"
	emptyTagName = "-"
	subString    = 2
	splitFileTag = "splitfile"
)

var splitFileRegex = regexp.MustCompile(`^split\.\d+\.(include|exclude)\.txt$`)

// configureValidator registers the english translations, the manifest file name rule and
// reports fields by their json or uri name.
func configureValidator(validate *validator.Validate) error {
	eng := en.New()
	uni := ut.New(eng, eng)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return err
	}
	if err := validate.RegisterValidation(splitFileTag, isSplitFile); err != nil {
		return err
	}
	if err := validate.RegisterTranslation(splitFileTag, trans,
		func(t ut.Translator) error {
			return t.Add(splitFileTag, "{0} must name a split manifest", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(splitFileTag, fe.Field())
			return msg
		}); err != nil {
		return err
	}
	validate.RegisterTagNameFunc(fieldName)
	return nil
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{jsonTagName, uriTagName} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", subString)[0]
		if name == emptyTagName {
			return fld.Name
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// isSplitFile accepts the file names the manifest writer produces.
func isSplitFile(fl validator.FieldLevel) bool {
	return splitFileRegex.MatchString(fl.Field().String())
}
