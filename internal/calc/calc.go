// ABOUTME: Body Mass Index and Waist-to-Hip Ratio formulas.
// ABOUTME: Pure functions returning nil instead of zero when inputs are unusable.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// BMI returns weight / height² rounded to two decimals.
// It returns nil unless both inputs are finite and strictly positive.
func BMI(weightKg, heightM float64) *float64 {
	if !usable(weightKg) || !usable(heightM) {
		return nil
	}
	v := Round2(weightKg / (heightM * heightM))
	return &v
}

// WHR returns waist / hip rounded to two decimals.
// It returns nil unless both inputs are finite and strictly positive.
func WHR(waistCm, hipCm float64) *float64 {
	if !usable(waistCm) || !usable(hipCm) {
		return nil
	}
	v := Round2(waistCm / hipCm)
	return &v
}

// BMIOf is BMI over optional inputs.
func BMIOf(weightKg, heightM *float64) *float64 {
	if weightKg == nil || heightM == nil {
		return nil
	}
	return BMI(*weightKg, *heightM)
}

// WHROf is WHR over optional inputs.
func WHROf(waistCm, hipCm *float64) *float64 {
	if waistCm == nil || hipCm == nil {
		return nil
	}
	return WHR(*waistCm, *hipCm)
}

// BMIString coerces raw text before computing BMI.
func BMIString(weightKg, heightM string) *float64 {
	return BMIOf(ParseNumber(weightKg), ParseNumber(heightM))
}

// WHRString coerces raw text before computing WHR.
func WHRString(waistCm, hipCm string) *float64 {
	return WHROf(ParseNumber(waistCm), ParseNumber(hipCm))
}

// ParseNumber converts text to a float, tolerating surrounding space and a decimal comma.
// Empty, non-numeric, NaN and infinite input yield nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
