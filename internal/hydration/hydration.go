// Package hydration estimates how much water a person should drink in a day.
package hydration

import "errors"

const (
	mlPerKg = 35.0

	hotC       = 32.0
	warmC      = 28.0
	hotExtraL  = 1.0
	warmExtraL = 0.5
)

var ErrInvalidWeight = errors.New("weight must be greater than zero")

// Recommend returns the daily water intake in liters for a person weighing
// weightKg at temperature tempC: 35 ml per kg, plus 1 L from 32 °C or
// 0.5 L from 28 °C.
func Recommend(tempC, weightKg float64) (float64, error) {
	if !(weightKg > 0) {
		return 0, ErrInvalidWeight
	}

	liters := weightKg * mlPerKg / 1000
	switch {
	case tempC >= hotC:
		liters += hotExtraL
	case tempC >= warmC:
		liters += warmExtraL
	}
	return liters, nil
}
