// Package validate provides struct-tag validation for the CLI's auth forms.
//
// The checks mirror what the storefront screens enforce before any network
// call: required fields, email shape, password length, role membership and
// password confirmation. They are advisory — the backend re-validates
// everything — so the rule set is deliberately small.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	in=a,b,c            value must be one of the listed items
//	confirmed           value must equal a sibling field named <field>_confirmation
//
// Example:
//
//	type RegisterInput struct {
//	    Email                string `json:"email"                 validate:"required,email"`
//	    Password             string `json:"password"              validate:"required,min=6"`
//	    PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
//	    Role                 string `json:"role"                  validate:"required,in=customer,courier,staff"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for j := 0; j < len(rules); j++ {
			rule := strings.TrimSpace(rules[j])
			if rule == "" || rule == "nullable" {
				continue
			}
			// `in=a,b,c` swallows the remaining comma-separated items.
			if strings.HasPrefix(rule, "in=") {
				rule = strings.Join(append([]string{rule}, rules[j+1:]...), ",")
				j = len(rules)
			}
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if length(v) >= 0 && length(v) < n {
			return fmt.Sprintf("The %s must be at least %d characters.", field, n)
		}
		if num, ok := numeric(v); ok && num < float64(n) {
			return fmt.Sprintf("The %s must be at least %d.", field, n)
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if length(v) > n {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n)
		}
		if num, ok := numeric(v); ok && num > float64(n) {
			return fmt.Sprintf("The %s may not be greater than %d.", field, n)
		}

	case "in":
		for _, item := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(item) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)

	case "confirmed":
		confirmation := siblingValue(parent, field)
		if raw != confirmation {
			return fmt.Sprintf("The %s confirmation does not match.", field)
		}
	}

	return ""
}

// siblingValue finds the field whose json name is "<field>" when this one is
// "<field>_confirmation", or "<field-without-suffix>" in general: a
// `confirmed` tag on password_confirmation compares against password.
func siblingValue(parent reflect.Value, field string) string {
	target := strings.TrimSuffix(field, "_confirmation")
	if target == field {
		target = field + "_confirmation"
	}
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == target {
			return fmt.Sprintf("%v", parent.Field(i).Interface())
		}
	}
	return ""
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// length returns the char length for strings, -1 for non-strings.
func length(v reflect.Value) int {
	if v.Kind() == reflect.String {
		return len([]rune(v.String()))
	}
	return -1
}

// numeric returns the value as float64 for int/uint/float kinds.
func numeric(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
