package analyzer

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zainokta/spectrum/model"
)

// validate is a shared go-playground/validator instance used only to
// sanity-check generated example values against the rule they were
// inferred from (never to validate live requests — that stays a
// non-goal of this library).
var validate = validator.New()

// ParseValidationTag decodes a `validate:"..."` struct tag (the Go
// analogue of a Laravel pipe-string rule set) into model.ValidationRules.
// Unrecognized tokens are preserved verbatim in Tokens for diagnostics
// rather than dropped, matching spec.md's "best-effort type" guidance
// for rule objects that cannot be fully interpreted.
func ParseValidationTag(tag string) model.ValidationRules {
	var rules model.ValidationRules
	if tag == "" {
		return rules
	}

	for _, token := range strings.Split(tag, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		name, arg, hasArg := strings.Cut(token, "=")

		switch name {
		case "required":
			rules.Required = true
		case "omitempty", "sometimes":
			rules.Required = false
		case "nullable":
			rules.Nullable = true
		case "min":
			if hasArg {
				if v, err := strconv.ParseFloat(arg, 64); err == nil {
					rules.Min = &v
				}
			}
		case "max":
			if hasArg {
				if v, err := strconv.ParseFloat(arg, 64); err == nil {
					rules.Max = &v
				}
			}
		case "len":
			if hasArg {
				if v, err := strconv.Atoi(arg); err == nil {
					rules.Len = &v
				}
			}
		case "oneof":
			if hasArg {
				rules.OneOf = strings.Fields(arg)
			}
		case "email":
			rules.Email = true
		case "uuid", "uuid4":
			rules.UUID = true
		case "url", "uri":
			rules.URL = true
		case "numeric", "number":
			rules.Numeric = true
		case "alpha":
			rules.Alpha = true
		case "alphanum":
			rules.Alphanum = true
		case "datetime":
			if hasArg {
				rules.DateTime = arg
			} else {
				rules.DateTime = "2006-01-02T15:04:05Z07:00"
			}
		case "file":
			rules.File = true
		default:
			rules.Tokens = append(rules.Tokens, token)
		}
	}

	return rules
}

// SanityCheckExample validates value against tag using the shared
// validator instance, confirming a generated example actually satisfies
// the rule it was inferred from (spec.md §4.9's ExampleGenerator
// strategies must not emit examples that contradict their own rules).
// A rule token this library doesn't translate into validator's own
// vocabulary (e.g. a bare "file") is skipped rather than treated as a
// failure.
func SanityCheckExample(value any, tag string) error {
	var kept []string
	for _, token := range strings.Split(tag, ",") {
		token = strings.TrimSpace(token)
		switch token {
		case "", "file", "nullable", "sometimes":
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		return nil
	}
	return validate.Var(value, strings.Join(kept, ","))
}

// ExampleUUID returns a freshly generated example UUID string, used
// wherever ValidationRules.UUID is set and no static/custom example was
// supplied.
func ExampleUUID() string {
	return uuid.New().String()
}
