package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	devkiterrors "github.com/alexisbeaulieu97/devkit/pkg/errors"
)

var (
	validatorOnce     sync.Once
	validatorInstance *validator.Validate

	projectSlugPattern  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	pgIdentifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Registration only fails for empty tags, which are constants here.
		_ = v.RegisterValidation("project_slug", func(fl validator.FieldLevel) bool {
			return projectSlugPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("pg_identifier", func(fl validator.FieldLevel) bool {
			return pgIdentifierPattern.MatchString(fl.Field().String())
		})

		validatorInstance = v
	})
	return validatorInstance
}

// Validate checks every field of the configuration against its rules and
// returns the first violation as a ValidationError.
func Validate(cfg *Config) error {
	if cfg == nil {
		return devkiterrors.NewValidationError("config", "configuration is nil", nil)
	}

	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return devkiterrors.NewValidationError(first.Field(), "failed rule "+first.Tag(), err)
	}
	return devkiterrors.NewValidationError("config", err.Error(), err)
}

// ValidateVar checks a single value against a validation tag, used by the
// prompt loop to reject bad input before it lands in the config.
func ValidateVar(value any, tag string) error {
	return getValidator().Var(value, tag)
}
