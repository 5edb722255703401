package accountdelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/petrbank/ledger-core/pkg/currencypkg"
)

// ValidCurrency checks that the bound field holds a supported currency.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if currency, ok := fl.Field().Interface().(string); ok {
		return currencypkg.IsSupportedCurrency(currency)
	}

	return false
}
