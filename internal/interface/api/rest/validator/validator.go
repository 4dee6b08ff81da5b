package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"student-manager-api/internal/domain/apperror"
	"student-manager-api/pkg/cpf"
)

var (
	raRe         = regexp.MustCompile(`^RA\d{6}$`)
	personNameRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
)

// field -> tag -> message; "*" matches any tag of the field
var messages = map[string]map[string]string{
	"name": {
		"required":   "Name is required",
		"min":        "Name must be at least 2 characters long",
		"max":        "Name must not exceed 100 characters",
		"personname": "Name must contain only letters and spaces",
	},
	"email": {
		"required": "Email is required",
		"max":      "Email must not exceed 255 characters",
		"*":        "Invalid email format",
	},
	"ra": {
		"*": "RA must follow the format RA followed by 6 digits (e.g., RA123456)",
	},
	"cpf": {
		"*": "Cpf must contain 11 digits without special characters and must be a valid cpf",
	},
	"password": {
		"*": "Password is required",
	},
	"currentPassword": {
		"*": "Current password is required",
	},
	"newPassword": {
		"*": "New password is required",
	},
	"confirmPassword": {
		"*": "Password confirmation is required",
	},
	"role": {
		"*": "Invalid role specified",
	},
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails on an empty tag or a nil func
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpf.Validate(fl.Field().String())
	})
	_ = v.RegisterValidation("ra", func(fl validator.FieldLevel) bool {
		return raRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(norm.NFC.String(fl.Field().String()))
	})

	return &Validator{v: v}
}

// Struct validates s and reports every failing field under message.
func (v *Validator) Struct(s any, message string) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return apperror.Validation(message)
	}

	details := make([]apperror.FieldError, 0, len(ves))
	for _, fe := range ves {
		details = append(details, apperror.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return apperror.Validation(message, details...)
}

func fieldMessage(fe validator.FieldError) string {
	if byTag, ok := messages[fe.Field()]; ok {
		if m, ok := byTag[fe.Tag()]; ok {
			return m
		}
		if m, ok := byTag["*"]; ok {
			return m
		}
	}
	return fe.Field() + " is invalid"
}

// NormalizeName trims s and composes it to NFC so visually equal names
// compare and store equal.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// QueryInt parses an optional integer query value. A missing value yields def
// and a malformed one yields ok=false.
func QueryInt(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
