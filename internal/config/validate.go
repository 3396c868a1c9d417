package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ConfigurationError reports a missing or invalid configuration key. It is
// fatal: callers must not start serving when Validate returns one.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "required" {
		return fmt.Sprintf("missing required configuration: %s", e.Key)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report keys by the environment variable that sets them, falling back to
	// the TOML name for file-only settings.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if env := f.Tag.Get("env"); env != "" {
			return env
		}
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration and returns a *ConfigurationError for the
// first offending key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	fe := verrs[0]
	key := fe.Field()
	if key != strings.ToUpper(key) {
		key = strings.TrimPrefix(fe.Namespace(), "Config.")
	}

	if fe.StructField() == "APIKey" {
		if native := ProviderKeyEnv(c.LLM.Provider); native != "" {
			key = native
		}
		return &ConfigurationError{Key: key, Reason: "required"}
	}

	switch fe.Tag() {
	case "required", "required_unless":
		return &ConfigurationError{Key: key, Reason: "required"}
	case "oneof":
		return &ConfigurationError{Key: key, Reason: fmt.Sprintf("%q is not one of [%s]", fe.Value(), fe.Param())}
	default:
		return &ConfigurationError{Key: key, Reason: fmt.Sprintf("failed %s=%s check", fe.Tag(), fe.Param())}
	}
}
