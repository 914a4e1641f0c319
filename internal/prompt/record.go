package prompt

import (
	"math"

	"github.com/healthassist/healthassist/types"
)

// Accepted age range for interactive entry.
const (
	MinAge = 19
	MaxAge = 80
)

// Measurements must be strictly positive; the closed range starts at the
// smallest positive float64.
const (
	minMeasurement = math.SmallestNonzeroFloat64
	maxMeasurement = math.MaxFloat64
)

var (
	genders    = []string{string(types.GenderFemale), string(types.GenderMale)}
	lifestyles = []string{string(types.LifestyleSedentary), string(types.LifestyleModerate), string(types.LifestyleActive)}
)

type measurement struct {
	prompt string
	field  *float64
}

// ReadRecord runs the interactive entry sequence and returns a record with
// every derived field at its default. Hip circumference is only asked for
// female users.
func ReadRecord(p *Prompter) (types.UserRecord, error) {
	rec := types.NewUserRecord()

	name, err := p.Name(
		"\nPlease enter your name: ",
		"Invalid name. Please enter a name containing only letters: ",
	)
	if err != nil {
		return types.UserRecord{}, err
	}
	rec.Name = name

	gender, err := p.Choice(
		"Please specify your gender as either male or female: ",
		"Invalid gender. Please enter male or female: ",
		genders...,
	)
	if err != nil {
		return types.UserRecord{}, err
	}
	rec.Gender = types.Gender(gender)

	age, err := p.Int(
		"Enter your age: ",
		"Invalid age. Please enter an age between 19 and 80: ",
		MinAge, MaxAge,
	)
	if err != nil {
		return types.UserRecord{}, err
	}
	rec.Age = age

	measurements := []measurement{
		{"Enter your body weight in kilograms: ", &rec.WeightKg},
		{"Enter your waist measurement in centimeters: ", &rec.WaistCm},
		{"Enter your neck measurement in centimeters: ", &rec.NeckCm},
		{"Enter your height measurement in centimeters: ", &rec.HeightCm},
	}
	if rec.IsFemale() {
		measurements = append(measurements, measurement{"Enter your hip measurement in centimeters: ", &rec.HipCm})
	}
	for _, m := range measurements {
		value, err := p.Float(
			m.prompt,
			"Invalid measurement. Please enter a value greater than 0: ",
			minMeasurement, maxMeasurement,
		)
		if err != nil {
			return types.UserRecord{}, err
		}
		*m.field = value
	}

	lifestyle, err := p.Choice(
		"Enter information about your current lifestyle (sedentary, moderate, or active): ",
		"Invalid lifestyle. Please enter sedentary, moderate, or active: ",
		lifestyles...,
	)
	if err != nil {
		return types.UserRecord{}, err
	}
	rec.Lifestyle = types.Lifestyle(lifestyle)

	return rec, nil
}
