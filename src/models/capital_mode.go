package models

import "fmt"

// CapitalMode selects how much cash a short put is considered to tie up.
type CapitalMode string

const (
	// CapitalConservative reserves the full strike.
	CapitalConservative CapitalMode = "conservative"
	// CapitalNet reserves the strike less the premium received.
	CapitalNet CapitalMode = "net"
)

func (m CapitalMode) Validate() error {
	if m != CapitalConservative && m != CapitalNet {
		return fmt.Errorf("CapitalMode: Validate: %w: %s", ErrInvalidCapitalMode, m)
	}

	return nil
}
