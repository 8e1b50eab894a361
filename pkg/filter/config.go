package filter

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// requiredMessages holds the error text used when a required key is absent.
var requiredMessages = map[string]string{
	"re":             "needs a regular expression",
	"format_message": "needs a format_message template",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report subfilter key names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeSubfilter decodes sub into out (a pointer to a config struct) and
// enforces its validate tags. Input is weakly typed so values coming from
// the CLI as strings ("true", "1") land in typed fields.
func decodeSubfilter(filterName string, sub Subfilter, out any) error {
	if sub == nil {
		sub = Subfilter{}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return &ConfigurationError{Filter: filterName, Message: "invalid configuration target", Err: err}
	}
	if err := decoder.Decode(map[string]any(sub)); err != nil {
		return &ConfigurationError{Filter: filterName, Message: "invalid subfilter", Err: err}
	}

	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			msg := "invalid value"
			if fe.Tag() == "required" {
				msg = "missing required key"
				if m, ok := requiredMessages[fe.Field()]; ok {
					msg = m
				}
			}
			return &ConfigurationError{Filter: filterName, Key: fe.Field(), Message: msg}
		}
		return &ConfigurationError{Filter: filterName, Message: "invalid subfilter", Err: err}
	}
	return nil
}
