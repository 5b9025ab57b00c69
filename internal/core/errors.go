package core

import "errors"

var (
	// ErrUnreachable covers transport failures and bodies that are not JSON
	ErrUnreachable = errors.New("backend unreachable")
	// ErrUnexpectedResponse is returned for valid JSON of an unknown shape
	ErrUnexpectedResponse = errors.New("unexpected response shape")
	// ErrInvalidThreshold is returned when a threshold is not a number in [0,1]
	ErrInvalidThreshold = errors.New("threshold must be a number between 0 and 1")
	// ErrSettingNotFound is returned by stores when a key has never been set
	ErrSettingNotFound = errors.New("setting not found")
)
