package models

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	SellPut       Strategy = "sell_put"
	CoveredCall   Strategy = "covered_call"
	IronButterfly Strategy = "iron_butterfly"
	IronCondor    Strategy = "iron_condor"
)

var AllStrategies = []Strategy{SellPut, CoveredCall, IronButterfly, IronCondor}

func ParseStrategy(s string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, strategy := range AllStrategies {
		if string(strategy) == normalized {
			return strategy, nil
		}
	}

	return "", fmt.Errorf("ParseStrategy: %w: %q", ErrInvalidStrategy, s)
}

func (s Strategy) Validate() error {
	if _, err := ParseStrategy(string(s)); err != nil {
		return err
	}

	return nil
}

// IsSpread reports whether the strategy is built from four legs.
func (s Strategy) IsSpread() bool {
	return s == IronButterfly || s == IronCondor
}

// OptionTypes lists the chains a strategy needs to evaluate.
func (s Strategy) OptionTypes() []OptionType {
	switch s {
	case SellPut:
		return []OptionType{Put}
	case CoveredCall:
		return []OptionType{Call}
	default:
		return []OptionType{Call, Put}
	}
}
