package config

import (
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	classNameRegexp    = regexp.MustCompile(`^[a-z][a-z0-9_]*(::[a-z][a-z0-9_]*)*$`)
	resourceTypeRegexp = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "class_name":
		return "must be a Puppet class name, e.g. netroutes::routes"
	case "resource_type":
		return "must consist only of lowercase letters, numbers, and underscores [a-z0-9_]"
	case "backup_suffix":
		return "must not contain a path separator"
	case "listen_address":
		return "must be in format 'host:port'"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "backup.suffix")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("class_name", validateClassName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("resource_type", validateResourceType); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("backup_suffix", validateBackupSuffix); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("listen_address", validateListenAddress); err != nil {
		panic(err)
	}

	// Report TOML key names in error paths.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateClassName(fl validator.FieldLevel) bool {
	return classNameRegexp.MatchString(fl.Field().String())
}

func validateResourceType(fl validator.FieldLevel) bool {
	return resourceTypeRegexp.MatchString(fl.Field().String())
}

func validateBackupSuffix(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), `/\`)
}

// validateListenAddress accepts host:port where host may be empty, an IP
// (IPv6 in square brackets) or a hostname.
func validateListenAddress(fl validator.FieldLevel) bool {
	host, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return false
	}
	if host == "" || net.ParseIP(host) != nil {
		return true
	}
	return !strings.ContainsAny(host, " /")
}
