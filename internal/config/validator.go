package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/glosso-dev/glosso/internal/table"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("pagesize", isPageSizeOption); err != nil {
		return nil, nil, fmt.Errorf("failed to register pagesize validation: %w", err)
	}
	if err := validate.RegisterTranslation("pagesize", trans, func(ut ut.Translator) error {
		return ut.Add("pagesize", fmt.Sprintf("{0} must be one of %v", table.RowsPerPageOptions), true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("pagesize", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register pagesize translation: %w", err)
	}

	return validate, trans, nil
}

func isPageSizeOption(fl validator.FieldLevel) bool {
	size := int(fl.Field().Int())
	for _, option := range table.RowsPerPageOptions {
		if size == option {
			return true
		}
	}
	return false
}
