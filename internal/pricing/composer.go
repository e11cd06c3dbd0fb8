package pricing

import "math"

// QuoteTiers are the granular components a remote valuation may carry:
// a fast auction clearing price, a marketplace listing estimate and a
// brokered-sale estimate.
type QuoteTiers struct {
	Auction     float64 `json:"auction"`
	Marketplace float64 `json:"marketplace"`
	Brokerage   float64 `json:"brokerage"`
}

// PriceTiers is the composed output: three non-negative integer price
// points derived from one valuation and one brand multiplier. Tiers are
// never stored on their own; they are always recomputable from their
// inputs.
type PriceTiers struct {
	Liquidity int `json:"liquidity_price"`
	Market    int `json:"market_price"`
	BuyNow    int `json:"buy_now_price"`
}

// Blend ratios for the granular path and markups for both paths.
const (
	marketplaceWeight = 0.7
	brokerageWeight   = 0.3
	buyNowMarkup      = 1.18
	scalarLiquidity   = 0.6
	scalarBuyNow      = 1.5
)

// Multiplier converts a brandability score into the price multiplier
// applied to every tier. Strictly monotonic in the score: 0.75 at a
// score of zero, 1.0 at 50, 1.25 at 100. Kept dead simple so tiers are
// reproducible from (raw valuation, brand score) alone.
func Multiplier(brandScore int) float64 {
	return 0.75 + 0.005*float64(brandScore)
}

// Compose turns a valuation into the three price tiers. When granular
// tiers are available the market price blends marketplace and
// brokerage components and buy-now takes a fixed markup on it;
// otherwise all tiers derive from the single scalar value.
func Compose(granular *QuoteTiers, value float64, multiplier float64) PriceTiers {
	if granular != nil {
		liquidity := math.Round(granular.Auction * multiplier)
		market := math.Round((marketplaceWeight*granular.Marketplace + brokerageWeight*granular.Brokerage) * multiplier)
		buyNow := math.Floor(market * buyNowMarkup)
		return clampTiers(liquidity, market, buyNow)
	}

	market := math.Round(value * multiplier)
	liquidity := math.Round(market * scalarLiquidity)
	buyNow := math.Round(market * scalarBuyNow)
	return clampTiers(liquidity, market, buyNow)
}

func clampTiers(liquidity, market, buyNow float64) PriceTiers {
	return PriceTiers{
		Liquidity: nonNegative(liquidity),
		Market:    nonNegative(market),
		BuyNow:    nonNegative(buyNow),
	}
}

func nonNegative(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int(v)
}
