package pricing

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
)

// D1D2 returns the Black-Scholes d1 and d2 terms without a dividend yield.
// ok is false when any of S, K, sigma or T is non-positive or not finite.
func D1D2(S, K, r, sigma, T float64) (d1, d2 float64, ok bool) {
	if !validInputs(S, K, sigma, T) || math.IsNaN(r) {
		return 0, 0, false
	}

	sqrtT := math.Sqrt(T)
	d1 = (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 = d1 - sigma*sqrtT

	return d1, d2, true
}

func validInputs(values ...float64) bool {
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 1) {
			return false
		}
	}

	return true
}

func CallPrice(S, K, r, sigma, T float64) (float64, bool) {
	d1, d2, ok := D1D2(S, K, r, sigma, T)
	if !ok {
		return 0, false
	}

	return S*NormCDF(d1) - K*math.Exp(-r*T)*NormCDF(d2), true
}

func PutPrice(S, K, r, sigma, T float64) (float64, bool) {
	d1, d2, ok := D1D2(S, K, r, sigma, T)
	if !ok {
		return 0, false
	}

	return K*math.Exp(-r*T)*NormCDF(-d2) - S*NormCDF(-d1), true
}

func Price(kind models.OptionType, S, K, r, sigma, T float64) (float64, bool) {
	if kind == models.Call {
		return CallPrice(S, K, r, sigma, T)
	}

	return PutPrice(S, K, r, sigma, T)
}

// CallDelta is N(d1), in [0,1].
func CallDelta(S, K, r, sigma, T float64) (float64, bool) {
	d1, _, ok := D1D2(S, K, r, sigma, T)
	if !ok {
		return 0, false
	}

	return NormCDF(d1), true
}

// PutDelta is N(d1)-1, in [-1,0].
func PutDelta(S, K, r, sigma, T float64) (float64, bool) {
	d1, _, ok := D1D2(S, K, r, sigma, T)
	if !ok {
		return 0, false
	}

	return NormCDF(d1) - 1, true
}

func Delta(kind models.OptionType, S, K, r, sigma, T float64) (float64, bool) {
	if kind == models.Call {
		return CallDelta(S, K, r, sigma, T)
	}

	return PutDelta(S, K, r, sigma, T)
}

// ITMProbabilityCall is the risk neutral probability that S_T > K.
func ITMProbabilityCall(S, K, r, sigma, T float64) (float64, bool) {
	_, d2, ok := D1D2(S, K, r, sigma, T)
	if !ok {
		return 0, false
	}

	return clamp01(NormCDF(d2)), true
}

// ITMProbabilityPut is the risk neutral probability that S_T < K.
func ITMProbabilityPut(S, K, r, sigma, T float64) (float64, bool) {
	_, d2, ok := D1D2(S, K, r, sigma, T)
	if !ok {
		return 0, false
	}

	return clamp01(NormCDF(-d2)), true
}

func ITMProbability(kind models.OptionType, S, K, r, sigma, T float64) (float64, bool) {
	if kind == models.Call {
		return ITMProbabilityCall(S, K, r, sigma, T)
	}

	return ITMProbabilityPut(S, K, r, sigma, T)
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
