// Package domain provides domain-specific error definitions and utilities.
package domain

import "errors"

// Batch job errors.
var (
	ErrJobNotFound = errors.New("batch job not found")
	ErrJobRunning  = errors.New("batch job is currently running")
)

// General domain errors.
var (
	ErrInvalidInput = errors.New("invalid input")
)
