// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package binerr holds the error constructors shared by the
// numerical and categorical binners, built on top of
// github.com/grailbio/base/errors the way the rest of this module's
// teacher codebase builds its own domain errors on that package.
package binerr

import "github.com/grailbio/base/errors"

// InvalidConfig wraps a constructor-time configuration problem.
func InvalidConfig(msg string) error {
	return errors.E(errors.Invalid, "binstats: invalid config: "+msg)
}

// InvalidInput wraps a Fit-time problem with x/y.
func InvalidInput(msg string) error {
	return errors.E(errors.Invalid, "binstats: invalid input: "+msg)
}

// ErrNotFitted is returned by Transform or bin accessors called
// before a successful Fit.
var ErrNotFitted = errors.E(errors.Precondition, "binstats: not fitted")

// IsInvalid reports whether err was produced by InvalidConfig or
// InvalidInput.
func IsInvalid(err error) bool { return errors.Is(errors.Invalid, err) }

// IsNotFitted reports whether err is (or wraps) ErrNotFitted.
func IsNotFitted(err error) bool { return errors.Is(errors.Precondition, err) }
