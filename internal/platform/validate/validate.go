// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

/*
Package validate provides a lightweight, chainable input validation helper.

# Usage

Handlers build a Validator, chain rule checks against decoded request fields,
and call Err once at the end:

	v := validate.New()
	v.Require("title", req.Title)
	v.MaxLen("title", req.Title, 200)
	if err := v.Err(); err != nil {
	    respond.Error(w, r, err)
	    return
	}

All failed rules are accumulated, so a single response reports every invalid
field at once instead of failing on the first.
*/
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validator accumulates field-level validation failures.
type Validator struct {
	fieldErrors []apperr.FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for the given field. The first failure recorded
// for a field wins when flattened into the response envelope.
func (v *Validator) AddError(field, message string) {
	v.fieldErrors = append(v.fieldErrors, apperr.FieldError{Field: field, Message: message})
}

// Check records message for field when ok is false. It enables arbitrary
// one-off rules without a dedicated helper.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Require fails when value is empty or whitespace-only.
func (v *Validator) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, fmt.Sprintf("%s is required", field))
	}
}

// MinLen fails when value is shorter than min runes.
func (v *Validator) MinLen(field, value string, min int) {
	if utf8.RuneCountInString(value) < min {
		v.AddError(field, fmt.Sprintf("%s must be at least %d characters long", field, min))
	}
}

// MaxLen fails when value is longer than max runes.
//
// Length is measured in runes, not bytes, so multibyte scripts such as
// Korean titles are counted the way users expect.
func (v *Validator) MaxLen(field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.AddError(field, fmt.Sprintf("%s must be at most %d characters long", field, max))
	}
}

// Email fails when value is not a parseable email address.
func (v *Validator) Email(field, value string) {
	if _, err := mail.ParseAddress(value); err != nil {
		v.AddError(field, "Invalid email format")
	}
}

// Username fails when value contains anything other than letters, digits,
// or underscores.
func (v *Validator) Username(field, value string) {
	if !usernamePattern.MatchString(value) {
		v.AddError(field, fmt.Sprintf("%s may only contain letters, numbers and underscores", field))
	}
}

// MinInt fails when value is below min.
func (v *Validator) MinInt(field string, value, min int) {
	if value < min {
		v.AddError(field, fmt.Sprintf("%s must be at least %d", field, min))
	}
}

// MaxInt fails when value is above max.
func (v *Validator) MaxInt(field string, value, max int) {
	if value > max {
		v.AddError(field, fmt.Sprintf("%s must be at most %d", field, max))
	}
}

// RangeFloat fails when value falls outside [min, max].
func (v *Validator) RangeFloat(field string, value, min, max float64) {
	if value < min || value > max {
		v.AddError(field, fmt.Sprintf("%s must be between %v and %v", field, min, max))
	}
}

// Valid reports whether no rule has failed so far.
func (v *Validator) Valid() bool {
	return len(v.fieldErrors) == 0
}

// Err returns the accumulated failures as a single validation error,
// or nil when everything passed.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperr.ValidationError("Invalid input", v.fieldErrors...)
}
