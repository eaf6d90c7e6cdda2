package cmd

import (
	"github.com/shopspring/decimal"
)

// decimalValue is a pflag.Value for decimal amounts
type decimalValue struct {
	target *decimal.Decimal
}

func (v decimalValue) String() string {
	if v.target == nil {
		return "0"
	}
	return v.target.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*v.target = d
	return nil
}

func (v decimalValue) Type() string {
	return "decimal"
}
