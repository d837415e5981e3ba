// Package status defines the error codes shared by the renderer, the
// configuration loader and the triangle readers.
package status

import (
	"errors"
	"sync"
)

// Code classifies a failure. The zero value means success.
//
// Code implements error so it can be wrapped with fmt.Errorf and matched
// with errors.Is.
type Code int

const (
	OK Code = iota
	InvalidValue
	FileOpenFailed
	FileCloseFailed
	OutOfMemory
	LineTooLong
	ConfigWrongFormat
)

var messages = [...]string{
	OK:                "",
	InvalidValue:      "Invalid argument value",
	FileOpenFailed:    "Failed to open file",
	FileCloseFailed:   "Failed to close file",
	OutOfMemory:       "Out of memory",
	LineTooLong:       "RAW triangle file line too long (over 1024 characters)",
	ConfigWrongFormat: "Configuration wrong format",
}

// String returns the human readable message for c.
func (c Code) String() string {
	if c < 0 || int(c) >= len(messages) {
		return "Unknown error"
	}
	return messages[c]
}

func (c Code) Error() string {
	return c.String()
}

// Of returns the Code carried by err, OK for nil, and InvalidValue for
// errors that carry no code.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return InvalidValue
}

// Slot holds the most recent error reported to it. It is safe for
// concurrent use.
type Slot struct {
	mu   sync.Mutex
	err  error
	code Code
}

// Set records err (which may be nil) and returns it unchanged so calls can
// be chained: return slot.Set(doWork()).
func (s *Slot) Set(err error) error {
	s.mu.Lock()
	s.err = err
	s.code = Of(err)
	s.mu.Unlock()
	return err
}

// Code returns the code of the last recorded error.
func (s *Slot) Code() Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Err returns the last recorded error.
func (s *Slot) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Clear resets the slot to OK.
func (s *Slot) Clear() {
	s.Set(nil)
}
