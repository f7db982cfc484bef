package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks value ranges and enumerations of a loaded configuration
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed '%s' (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
}

// Warnings returns non-critical issues such as disabled features or
// insecure default values
func (c *Config) Warnings() []string {
	var warnings []string

	if c.AdminAPIKey == "" {
		warnings = append(warnings, WarnAdminDisabled)
	}
	if c.TauntAPIKey == "" && c.TauntFile == "" {
		warnings = append(warnings, WarnStaticTaunts)
	}
	if c.UsesPostgres() && c.DBPassword == DefaultDBPassword {
		warnings = append(warnings, WarnDefaultPassword)
	}

	return warnings
}
