package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf key, so messages name the setting
// an operator would edit (e.g. "networker.hostname").
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}

		return name
	})

	return v
}

// Validate checks the configuration. The service refuses to start when it
// fails.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return c.Networker.validateEndpoint()
}

// validateEndpoint rejects hostnames Networker cannot be reached at.
// The url tag accepts any scheme; requests are always made over HTTP(S).
func (n *NetworkerConfig) validateEndpoint() error {
	u, err := url.Parse(n.Hostname)
	if err != nil {
		return fmt.Errorf("config validation failed:\n  networker.hostname: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config validation failed:\n  networker.hostname must use http or https, got %q", u.Scheme)
	}

	return nil
}

func formatValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		lines[i] = describe(fe)
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := fieldKey(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, strings.ToLower(fe.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return key + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q", key, fe.Tag())
	}
}

// fieldKey drops the root type from a namespace: "Config.networker.hostname"
// becomes "networker.hostname".
func fieldKey(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}
