// Package pricing derives a booking's price breakdown from its priceable
// inputs. It has no I/O and no state.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

const Currency = "ZAR"

var serviceFeeRate = decimal.RequireFromString("0.10")

// ServiceFeeRate is the fraction of the subtotal charged as a service fee.
func ServiceFeeRate() decimal.Decimal { return serviceFeeRate }

var hundred = decimal.NewFromInt(100)

// ComputeBreakdown prices a service for the given room counts and extras.
// Callers pass non-negative counts and extras with a non-negative price and a
// quantity of at least one. Amounts are not rounded.
func ComputeBreakdown(svc entity.Service, bedrooms, bathrooms int, extras []entity.ExtraSelection) entity.PricingBreakdown {
	base := svc.BasePrice
	bedroom := perRoom(svc.PerBedroomPrice, bedrooms)
	bathroom := perRoom(svc.PerBathroomPrice, bathrooms)

	extrasTotal := decimal.Zero
	for _, e := range extras {
		extrasTotal = extrasTotal.Add(e.LineTotal())
	}

	subtotal := base.Add(bedroom).Add(bathroom).Add(extrasTotal)
	fee := subtotal.Mul(serviceFeeRate)

	return entity.PricingBreakdown{
		BasePrice:     base,
		BedroomPrice:  bedroom,
		BathroomPrice: bathroom,
		ExtrasPrice:   extrasTotal,
		Subtotal:      subtotal,
		ServiceFee:    fee,
		Total:         subtotal.Add(fee),
	}
}

func perRoom(price *decimal.Decimal, rooms int) decimal.Decimal {
	if price == nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(rooms)))
}

// MinorUnits converts an amount to cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
