package model

import (
	"encoding/json"
	"strconv"

	"rental-admin-backend/internal/parse"
)

// Money is a currency amount. The backend serializes decimals either as JSON
// numbers or as strings ("120.00"); both decode into Money.
type Money float64

// UnmarshalJSON accepts numbers, numeric strings and null.
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*m = Money(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := parse.Money(s)
	if err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Round returns the amount rounded to cents.
func (m Money) Round() Money {
	return Money(parse.RoundCents(float64(m)))
}
