// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps JSON field names to human-readable problems.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+fe[f])
	}
	return strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match any FieldErrors.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Validator checks user input before it reaches the Library.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator with the book-specific rules registered.
func NewValidator() *Validator {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Ratings move in half stars.
	_ = v.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				return true
			}
			f = f.Elem()
		}
		x := f.Float() * 2
		return x == math.Trunc(x)
	})

	return &Validator{v: v}
}

// ValidateDraft checks a new book for the given category. Pre-orders need a
// release date.
func (v *Validator) ValidateDraft(d Draft, category Category) error {
	fe := FieldErrors{}
	v.collect(d, fe)
	if category == CategoryPreOrder && d.ReleaseDate == nil {
		fe["releaseDate"] = "is required for pre-orders"
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

// ValidatePatch checks an edit of current. Only the fields being changed are
// validated. A genre list may not be emptied and a pre-order keeps its release date.
func (v *Validator) ValidatePatch(p Patch, current Book) error {
	fe := FieldErrors{}
	v.collect(p, fe)
	if p.Genre != nil && len(p.Genre) == 0 {
		fe["genre"] = "needs at least 1 entry"
	}
	if current.Category == CategoryPreOrder && p.ClearReleaseDate && p.ReleaseDate == nil {
		fe["releaseDate"] = "is required for pre-orders"
	}
	for field, value := range map[string]*string{"imageUrl": p.ImageURL, "shopLink": p.ShopLink} {
		if value == nil {
			continue
		}
		if err := v.v.Var(*value, "omitempty,url"); err != nil {
			fe[field] = "must be a valid URL"
		}
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func (v *Validator) collect(s any, fe FieldErrors) {
	err := v.v.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe["_"] = err.Error()
		return
	}
	for _, e := range verrs {
		fe[fieldName(e)] = friendlyMessage(e)
	}
}

// fieldName drops dive indexes so "genre[0]" reports as "genre".
func fieldName(e validator.FieldError) string {
	name, _, _ := strings.Cut(e.Field(), "[")
	return name
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("needs at least %s entry", e.Param())
		}
		return "must not be empty"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "halfstep":
		return "must be a multiple of 0.5"
	default:
		return "is invalid"
	}
}
