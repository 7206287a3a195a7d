package util

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNameRequired        = errors.New("name is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrPhaseLocked         = errors.New("phase is locked")
	ErrPersistence         = errors.New("store write did not succeed")
	ErrIdentityMissing     = errors.New("no authenticated participant")
	ErrInvalidPoints       = errors.New("points must not be negative")
)
