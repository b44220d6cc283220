package trip

import (
	"regexp"
	"strings"
)

// Name-based classification is whole-word and case-insensitive, so "Gasoline
// Alley" is not a gas stop but "OMV gas" is. Symbol checks are literal
// substring matches against the symbol strings BaseCamp assigns.
var (
	gasName      = regexp.MustCompile(`(?i)\b(?:gas|fuel)\b`)
	mealName     = regexp.MustCompile(`(?i)\b(?:restaurant|lunch|breakfast|dinner)\b`)
	scenicName   = regexp.MustCompile(`(?i)\bscenic area\b|\bphoto\b`)
	restroomName = regexp.MustCompile(`(?i)\brestroom\b`)
)

// IsGas reports whether the point is a fuel stop.
func IsGas(name, symbol string) bool {
	return strings.Contains(symbol, "Gas Station") || gasName.MatchString(name)
}

// IsMeal reports whether the point is a meal stop.
func IsMeal(name, symbol string) bool {
	return strings.Contains(symbol, "Restaurant") || mealName.MatchString(name)
}

// IsScenic reports whether the point is a scenic or photo stop.
func IsScenic(name, symbol string) bool {
	return strings.Contains(symbol, "Scenic Area") || scenicName.MatchString(name)
}

// IsRestroom reports whether the point is a restroom break.
func IsRestroom(name, symbol string) bool {
	return strings.Contains(symbol, "Restroom") || restroomName.MatchString(name)
}

// Classify maps a point's name and symbol to its stop category. When several
// apply, meal wins over gas, gas over scenic, scenic over restroom.
func Classify(name, symbol string) Category {
	switch {
	case IsMeal(name, symbol):
		return CategoryMeal
	case IsGas(name, symbol):
		return CategoryGas
	case IsScenic(name, symbol):
		return CategoryScenic
	case IsRestroom(name, symbol):
		return CategoryRestroom
	}
	return CategoryNone
}

// IsShaping reports whether a route point exists only to shape the path:
// unnamed, auto-named with a "Via " prefix, or carrying a shaping-point
// extension. Shaping points contribute distance but are never emitted.
func IsShaping(name string, ext PointExtensions) bool {
	if ext.ShapingPoint {
		return true
	}
	return name == "" || strings.HasPrefix(name, "Via ")
}
