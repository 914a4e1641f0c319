package types

// Gender is the biological sex used by the body-fat and calorie formulas.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Lifestyle is the self-reported activity level of a user.
type Lifestyle string

const (
	LifestyleSedentary Lifestyle = "sedentary"
	LifestyleModerate  Lifestyle = "moderate"
	LifestyleActive    Lifestyle = "active"
)

// Body-fat classification labels.
const (
	BodyFatUnset    = "none"
	BodyFatLow      = "low"
	BodyFatNormal   = "normal"
	BodyFatHigh     = "high"
	BodyFatVeryHigh = "very high"
)

// BodyFat pairs an estimated body-fat percentage with its classification.
type BodyFat struct {
	// Percentage is the estimated fraction of body mass that is fat, in percent.
	Percentage float64 `json:"percentage"`

	// Group is the classification for the user's gender and age band.
	// It is empty when the age falls outside every band.
	Group string `json:"group"`
}

// UserRecord holds the measurements of one tracked person together with the
// metrics derived from them.
type UserRecord struct {
	// Name identifies the user within a store. It is not enforced unique.
	Name string `json:"name"`

	Gender Gender `json:"gender"`

	// Age in years.
	Age int `json:"age"`

	WeightKg float64 `json:"weight_kg"`
	WaistCm  float64 `json:"waist_cm"`
	NeckCm   float64 `json:"neck_cm"`
	HeightCm float64 `json:"height_cm"`

	// HipCm is only measured for female users and stays 0 otherwise.
	HipCm float64 `json:"hip_cm"`

	Lifestyle Lifestyle `json:"lifestyle"`

	// BodyFat is (0, "none") until computed.
	BodyFat BodyFat `json:"body_fat"`

	// DailyCalories holds an integral calorie target, 0 until computed.
	DailyCalories float64 `json:"daily_calories"`

	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
}

// NewUserRecord returns a record with every derived field at its default.
func NewUserRecord() UserRecord {
	return UserRecord{BodyFat: BodyFat{Group: BodyFatUnset}}
}

// IsFemale reports whether hip measurements apply to the record.
func (r UserRecord) IsFemale() bool {
	return r.Gender == GenderFemale
}
