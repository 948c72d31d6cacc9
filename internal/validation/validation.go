// Package validation holds the input rules for registration and project
// management. The rules are deliberately shape-only: no DNS lookups, no
// calendar logic beyond what the date parser enforces.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/amsaid/crowdfund/internal/models"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mobileRe   = regexp.MustCompile(`^(\+20|0020|20)?01[0125][0-9]{8}$`)
	landlineRe = regexp.MustCompile(`^(\+20|0020|20)?02[0-9]{8}$`)
	phoneSepRe = regexp.MustCompile(`[\s\-()]`)
)

// Validator bundles a validator.Validate instance with the custom tags this
// application needs. The clock is injectable so the "start date cannot be in
// the past" rule is testable against a fixed moment.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New builds a Validator with the custom tag registrations in place.
func New() *Validator {
	v := validator.New()
	mustRegister(v, "emailshape", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "egphone", func(fl validator.FieldLevel) bool {
		phone := phoneSepRe.ReplaceAllString(fl.Field().String(), "")
		return mobileRe.MatchString(phone) || landlineRe.MatchString(phone)
	})
	mustRegister(v, "alphaname", func(fl validator.FieldLevel) bool {
		return isAlphaName(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
	return &Validator{v: v, now: time.Now}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// WithNow returns a copy of the Validator that reads the current moment from
// the given clock.
func (v *Validator) WithNow(now func() time.Time) *Validator {
	return &Validator{v: v.v, now: now}
}

// Email reports whether s has a local@domain.tld shape.
func (v *Validator) Email(s string) bool {
	return v.v.Var(s, "required,emailshape") == nil
}

// Phone reports whether s is an Egyptian mobile (010/011/012/015 + 8 digits)
// or landline (02 + 8 digits) number, with an optional country-code prefix.
// Spaces, hyphens, and parentheses are stripped before matching.
func (v *Validator) Phone(s string) bool {
	return v.v.Var(s, "required,egphone") == nil
}

// Name reports whether s is non-empty after trimming and made up entirely of
// letters and whitespace.
func (v *Validator) Name(s string) bool {
	return v.v.Var(s, "required,alphaname") == nil
}

// Date reports whether s parses as YYYY-MM-DD.
func (v *Validator) Date(s string) bool {
	return v.v.Var(s, "required,isodate") == nil
}

// DelimiterFree reports whether s is safe to persist in the pipe-delimited
// record format.
func (v *Validator) DelimiterFree(s string) bool {
	return !strings.Contains(s, models.FieldSeparator)
}

// DateRange checks that both dates parse, end is strictly after start, and
// start is not before the current moment. On failure the second return value
// carries the user-facing message.
//
// Note the start comparison is against the current instant, not the current
// calendar day, so a start date of today fails once the day has begun. This
// mirrors the historical behavior of the platform.
func (v *Validator) DateRange(start, end string) (bool, string) {
	startAt, errStart := time.Parse(models.DateLayout, start)
	endAt, errEnd := time.Parse(models.DateLayout, end)
	if errStart != nil || errEnd != nil {
		return false, "Invalid date format!"
	}
	if !endAt.After(startAt) {
		return false, "End date must be after start date!"
	}
	if startAt.Before(v.now()) {
		return false, "Start date cannot be in the past!"
	}
	return true, ""
}

func isAlphaName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
