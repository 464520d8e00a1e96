package domain

import (
	"errors"
	"fmt"
)

// ErrInvalid marks construction-time validation failures. It is raised
// before any persistence attempt; storage errors never wrap it.
var ErrInvalid = errors.New("invalid entity")

// Stop is a boarding location. Identity is immutable once persisted.
type Stop struct {
	ID   int64
	Name string
	City string
}

func (s *Stop) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: stop name is required", ErrInvalid)
	}
	if s.City == "" {
		return fmt.Errorf("%w: stop city is required", ErrInvalid)
	}
	return nil
}
