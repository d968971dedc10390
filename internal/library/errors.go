// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import "errors"

var (
	// ErrNotFound indicates no book has the requested id.
	ErrNotFound = errors.New("book not found")

	// ErrInvalidTransition indicates a category change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid category transition")

	// ErrInvalidSnapshot indicates an import document that could not be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrValidation indicates user input rejected at the input boundary.
	ErrValidation = errors.New("validation failed")
)
