package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/healthassist/healthassist/types"
)

// ErrUnknownGender is returned when a record's gender has no formula.
var ErrUnknownGender = errors.New("unknown gender")

// BodyFatPercentage estimates body fat with the U.S. Navy circumference
// method. hip is ignored for male users.
func BodyFatPercentage(gender types.Gender, waist, neck, height, hip float64) (float64, error) {
	switch gender {
	case types.GenderMale:
		return 495/(1.0324-0.19077*math.Log10(waist-neck)+0.15456*math.Log10(height)) - 450, nil
	case types.GenderFemale:
		return 495/(1.29579-0.35004*math.Log10(waist+hip-neck)+0.22100*math.Log10(height)) - 450, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGender, gender)
	}
}

// bodyFatBand holds the cutoffs of one gender and age band. A value below
// lowBelow is low, [normalFrom, normalTo) is normal, [highFrom, highTo) is
// high and anything else is very high. With inclusive set, the upper bounds
// of normal and high are closed.
type bodyFatBand struct {
	minAge, maxAge       int
	lowBelow             float64
	normalFrom, normalTo float64
	highFrom, highTo     float64
	inclusive            bool
}

var bodyFatBands = map[types.Gender][]bodyFatBand{
	types.GenderFemale: {
		{minAge: 20, maxAge: 39, lowBelow: 21, normalFrom: 21, normalTo: 32.9, highFrom: 33, highTo: 38.9},
		{minAge: 40, maxAge: 59, lowBelow: 23, normalFrom: 23, normalTo: 33.9, highFrom: 34, highTo: 39.9},
		{minAge: 60, maxAge: 79, lowBelow: 24, normalFrom: 24, normalTo: 35.9, highFrom: 36, highTo: 41.9},
	},
	types.GenderMale: {
		{minAge: 20, maxAge: 39, lowBelow: 8, normalFrom: 8, normalTo: 19.9, highFrom: 20, highTo: 24.9},
		{minAge: 40, maxAge: 59, lowBelow: 11, normalFrom: 11, normalTo: 21.9, highFrom: 22, highTo: 27.9},
		{minAge: 60, maxAge: math.MaxInt, lowBelow: 13, normalFrom: 13, normalTo: 24.9, highFrom: 25, highTo: 29.9, inclusive: true},
	},
}

func (b bodyFatBand) classify(bfp float64) string {
	below := func(v, limit float64) bool {
		if b.inclusive {
			return v <= limit
		}
		return v < limit
	}

	switch {
	case bfp < b.lowBelow:
		return types.BodyFatLow
	case bfp >= b.normalFrom && below(bfp, b.normalTo):
		return types.BodyFatNormal
	case bfp >= b.highFrom && below(bfp, b.highTo):
		return types.BodyFatHigh
	default:
		return types.BodyFatVeryHigh
	}
}

// ClassifyBodyFat labels bfp for the given gender and age. It returns an
// empty label when the age falls outside every band.
func ClassifyBodyFat(gender types.Gender, age int, bfp float64) string {
	for _, band := range bodyFatBands[gender] {
		if age >= band.minAge && age <= band.maxAge {
			return band.classify(bfp)
		}
	}
	return ""
}

const (
	baseCalories       = 1600
	youngAdultBonus    = 400
	adultBonus         = 200
	maleBonus          = 400
	maleActivityUnit   = 300
	femaleActivityUnit = 200
)

// DailyCalories returns the recommended daily calorie intake.
func DailyCalories(gender types.Gender, age int, lifestyle types.Lifestyle) int {
	calories := baseCalories

	if age < 51 {
		if age > 30 {
			calories += adultBonus
		} else {
			calories += youngAdultBonus
		}
	}

	unit := femaleActivityUnit
	if gender == types.GenderMale {
		calories += maleBonus
		unit = maleActivityUnit
	}

	// Anything other than sedentary or moderate counts as active.
	switch lifestyle {
	case types.LifestyleSedentary:
	case types.LifestyleModerate:
		calories += unit
	default:
		calories += 2 * unit
	}
	return calories
}

// Energy per gram and share of daily calories for each macronutrient.
const (
	carbCaloriesPerGram    = 4
	proteinCaloriesPerGram = 4
	fatCaloriesPerGram     = 9

	carbShare    = 0.5
	proteinShare = 0.3
	fatShare     = 0.2
)

// Macros splits a calorie target into grams of carbohydrate, protein and fat.
func Macros(calories float64) (carbs, protein, fat float64) {
	carbs = calories * carbShare / carbCaloriesPerGram
	protein = calories * proteinShare / proteinCaloriesPerGram
	fat = calories * fatShare / fatCaloriesPerGram
	return carbs, protein, fat
}
