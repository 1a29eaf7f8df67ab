package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OptionChainCsvDTO is one row of an option chain snapshot file. Cells are kept as text
// so that blank and "NaN" cells load as missing values instead of failing the file.
type OptionChainCsvDTO struct {
	Ticker          string `csv:"ticker"`
	Expiration      string `csv:"expiration"`
	OptionType      string `csv:"option_type"`
	ContractSymbol  string `csv:"contract_symbol"`
	Strike          string `csv:"strike"`
	Bid             string `csv:"bid"`
	Ask             string `csv:"ask"`
	LastPrice       string `csv:"last_price"`
	ImpliedVol      string `csv:"implied_vol"`
	Volume          string `csv:"volume"`
	OpenInterest    string `csv:"open_interest"`
	InTheMoney      string `csv:"in_the_money"`
	UnderlyingPrice string `csv:"underlying_price"`
}

func parseCsvFloat(name, cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", name, err)
	}

	return v, nil
}

// parseCsvInt reads a count. Missing, negative and non-finite cells become 0, and
// values past the int range are capped.
func parseCsvInt(name, cell string) (int, error) {
	v, err := parseCsvFloat(name, cell)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, nil
	}

	if v >= float64(math.MaxInt) {
		return math.MaxInt, nil
	}

	return int(v), nil
}

func (dto *OptionChainCsvDTO) GetOptionType() (OptionType, error) {
	kind := OptionType(strings.ToLower(strings.TrimSpace(dto.OptionType)))
	if err := kind.Validate(); err != nil {
		return "", err
	}

	return kind, nil
}

func (dto *OptionChainCsvDTO) GetUnderlyingPrice() (float64, bool) {
	v, err := parseCsvFloat("underlying_price", dto.UnderlyingPrice)
	if err != nil || !Positive(v) {
		return 0, false
	}

	return v, true
}

func (dto *OptionChainCsvDTO) ToModel() (RawContractQuote, error) {
	quote := RawContractQuote{
		ContractSymbol: strings.TrimSpace(dto.ContractSymbol),
		Ticker:         strings.ToUpper(strings.TrimSpace(dto.Ticker)),
	}

	var err error

	floats := []struct {
		name string
		cell string
		dst  *float64
	}{
		{"strike", dto.Strike, &quote.Strike},
		{"bid", dto.Bid, &quote.Bid},
		{"ask", dto.Ask, &quote.Ask},
		{"last_price", dto.LastPrice, &quote.LastPrice},
		{"implied_vol", dto.ImpliedVol, &quote.ImpliedVol},
	}

	for _, f := range floats {
		if *f.dst, err = parseCsvFloat(f.name, f.cell); err != nil {
			return RawContractQuote{}, fmt.Errorf("OptionChainCsvDTO.ToModel: %s: %w", dto.ContractSymbol, err)
		}
	}

	if quote.Volume, err = parseCsvInt("volume", dto.Volume); err != nil {
		return RawContractQuote{}, fmt.Errorf("OptionChainCsvDTO.ToModel: %s: %w", dto.ContractSymbol, err)
	}

	if quote.OpenInterest, err = parseCsvInt("open_interest", dto.OpenInterest); err != nil {
		return RawContractQuote{}, fmt.Errorf("OptionChainCsvDTO.ToModel: %s: %w", dto.ContractSymbol, err)
	}

	quote.InTheMoney, _ = strconv.ParseBool(strings.TrimSpace(dto.InTheMoney))

	return quote, nil
}
