package intent

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// SplitGross splits a VAT-inclusive amount: net = gross / (1 + rate),
// rounded to cents, and vat = gross - net so the parts always sum to gross.
func SplitGross(gross, rate decimal.Decimal) (net, vat decimal.Decimal) {
	net = gross.DivRound(one.Add(rate), 2)
	return net, gross.Sub(net)
}
