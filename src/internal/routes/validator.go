package routes

import (
	stderrors "errors"
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("ip_or_var", validateIPOrVariable); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("network_or_var", validateNetworkOrVariable); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("manifest_value", validateManifestValue); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("manifest_name", validateManifestName); err != nil {
		panic(err)
	}

	// Report field names the way they appear in JSON and in the manifest.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func isVariable(value string) bool {
	return strings.HasPrefix(value, VariableSigil) && len(value) > 1
}

// validateIPOrVariable accepts an IP address or a Puppet variable reference.
func validateIPOrVariable(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return isVariable(value) || net.ParseIP(value) != nil
}

// validateNetworkOrVariable accepts "default", an IP address, a CIDR, or a
// Puppet variable reference.
func validateNetworkOrVariable(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if isVariable(value) || value == utils.DefaultNetwork || net.ParseIP(value) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(value)
	return err == nil
}

var (
	// A quote that the scanner could take as the closing one, followed by a
	// comment, cuts the value short on the next read.
	quoteThenComment = regexp.MustCompile(`['"],?[^\S\n\r]*#`)
	// Variables render unquoted and must survive the item grammar as is.
	variableValue = regexp.MustCompile(`^\$[^\s#,'"]+$`)
)

// isManifestSafe reports whether value reads back unchanged after Quote
// renders it into a route block.
func isManifestSafe(value string) bool {
	if strings.ContainsAny(value, "\r\n") {
		return false
	}
	if strings.HasPrefix(value, VariableSigil) {
		return variableValue.MatchString(value)
	}
	if strings.Contains(value, "'") && strings.Contains(value, `"`) {
		return false
	}
	return !quoteThenComment.MatchString(value)
}

func validateManifestValue(fl validator.FieldLevel) bool {
	return isManifestSafe(fl.Field().String())
}

// validateManifestName rejects names that Quote would leave bare; the block
// head only accepts a quoted title.
func validateManifestName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.HasPrefix(value, VariableSigil) && isManifestSafe(value)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "ip_or_var":
		return "must be an IP address or a $variable"
	case "network_or_var":
		return "must be 'default', an IP address, a CIDR or a $variable"
	case "manifest_value":
		return "cannot be written to a route block and read back unchanged"
	case "manifest_name":
		return "cannot be written as a route title and read back unchanged"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// CheckRecord validates a caller-supplied record before it is persisted.
// Records read from a route file are never checked so that hand-edited
// manifests still load.
func CheckRecord(rec *Record, policy IdentityPolicy) error {
	var problems []string

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return errors.NewInternalError("failed to validate route", err)
		}
		for _, e := range verrs {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), validationMessage(e)))
		}
	}

	if policy == IdentityNetwork && (rec.Network == "" || rec.Netmask == "") {
		problems = append(problems, "network, netmask: both are required to identify a route")
	}

	if len(problems) > 0 {
		name := rec.Name
		if name == "" {
			name = "<unnamed>"
		}
		return errors.Newf(errors.ErrCodeInvalidRecord, "route %s is invalid: %s", name, strings.Join(problems, "; "))
	}
	return nil
}

// CheckRecords validates every record, stopping at the first invalid one.
func CheckRecords(records []*Record, policy IdentityPolicy) error {
	for _, rec := range records {
		if err := CheckRecord(rec, policy); err != nil {
			return err
		}
	}
	return nil
}
