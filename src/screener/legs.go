package screener

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/pricing"
	"github.com/jiaming2012/option-screener/src/returns"
)

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}

	return *v
}

// UsedPremium is the price a contract contributes when it is a leg of a structure.
func UsedPremium(c models.EvaluatedContract) float64 {
	return pricing.UsedPrice(valueOrNaN(c.Mid), c.LastPrice, valueOrNaN(c.TheoreticalPrice), c.Bid, c.Ask)
}

func NewLeg(c models.EvaluatedContract, side models.LegSide) models.SpreadLeg {
	return models.SpreadLeg{
		Side:           side,
		ContractSymbol: c.ContractSymbol,
		Strike:         c.Strike,
		Premium:        UsedPremium(c),
		PriceSource:    c.PriceSource,
		Spread:         c.Spread,
		Volume:         c.Volume,
		OpenInterest:   c.OpenInterest,
		AbsDelta:       c.AbsDelta,
	}
}

// WingedSpreadInput describes one candidate structure before its economics are known.
type WingedSpreadInput struct {
	Kind        models.Strategy
	Ticker      string
	Expiration  string
	DTE         int
	ShortPut    models.SpreadLeg
	ShortCall   models.SpreadLeg
	LongPut     models.SpreadLeg
	LongCall    models.SpreadLeg
	WingWidth   float64
	BreakevenLo float64
	BreakevenHi float64
}

// NewWingedSpread prices a four leg structure. ok is false for a structure that is not a
// credit, has a non-finite credit, or has a wing without width.
func NewWingedSpread(in WingedSpreadInput, params models.ScreeningParameters) (models.WingedSpread, bool) {
	putWidth := in.ShortPut.Strike - in.LongPut.Strike
	callWidth := in.LongCall.Strike - in.ShortCall.Strike
	if !(putWidth > 0) || !(callWidth > 0) || !(in.WingWidth > 0) {
		return models.WingedSpread{}, false
	}

	credit := (in.ShortPut.Premium + in.ShortCall.Premium) - (in.LongPut.Premium + in.LongCall.Premium)
	if math.IsNaN(credit) || math.IsInf(credit, 0) || credit <= 0 {
		return models.WingedSpread{}, false
	}

	width := math.Max(putWidth, callWidth)
	maxLoss := math.Max(width-credit, 0)
	ror := returns.ReturnOnRisk(credit, width)

	s := models.WingedSpread{
		Kind:                   in.Kind,
		Ticker:                 in.Ticker,
		Expiration:             in.Expiration,
		DaysToExpiration:       in.DTE,
		ShortPut:               in.ShortPut,
		ShortCall:              in.ShortCall,
		LongPut:                in.LongPut,
		LongCall:               in.LongCall,
		WingWidth:              in.WingWidth,
		PutWingWidth:           putWidth,
		CallWingWidth:          callWidth,
		NetCredit:              credit,
		MaxProfit:              credit,
		MaxLoss:                maxLoss,
		BreakevenLow:           in.BreakevenLo - credit,
		BreakevenHigh:          in.BreakevenHi + credit,
		ReturnOnRisk:           ror,
		AnnualizedReturnOnRisk: returns.Annualize(ror, in.DTE),
		CapitalAtRisk:          returns.SpreadCapital(maxLoss, params.Multiplier()),
	}

	summarizeLiquidity(&s, params)

	return s, true
}

// summarizeLiquidity records the widest leg spread and thinnest leg volume. The
// resulting flag is advisory; an unknown leg spread does not fail it.
func summarizeLiquidity(s *models.WingedSpread, params models.ScreeningParameters) {
	legs := s.Legs()

	s.LiquidityOK = true
	s.MinLegVolume = legs[0].Volume

	for _, leg := range legs {
		if leg.Spread != nil {
			if s.MaxLegSpread == nil || *leg.Spread > *s.MaxLegSpread {
				s.MaxLegSpread = models.Float64(*leg.Spread)
			}

			if *leg.Spread > params.MaxLegSpread {
				s.LiquidityOK = false
			}
		}

		if leg.Volume < s.MinLegVolume {
			s.MinLegVolume = leg.Volume
		}

		if leg.Volume < params.MinLegVolume {
			s.LiquidityOK = false
		}
	}
}
