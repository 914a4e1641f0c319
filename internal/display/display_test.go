package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/healthassist/healthassist/types"
	"github.com/stretchr/testify/assert"
)

func sample(name string, gender types.Gender) types.UserRecord {
	rec := types.NewUserRecord()
	rec.Name = name
	rec.Gender = gender
	rec.Age = 45
	rec.WeightKg = 82.5
	rec.WaistCm = 90
	rec.NeckCm = 38
	rec.HeightCm = 175
	rec.Lifestyle = types.LifestyleModerate
	if gender == types.GenderFemale {
		rec.HipCm = 101
	}
	return rec
}

func TestRecordPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	rec := sample("john", types.GenderMale)
	rec.BodyFat = types.BodyFat{Percentage: 20.656693134107968, Group: types.BodyFatNormal}
	rec.DailyCalories = 2500
	rec.FatG = 2500 * 0.2 / 9

	New(&buf).Record(&buf, rec)
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "User: john")
	assert.Contains(t, out, "Gender:")
	assert.Contains(t, out, "45 years")
	assert.Contains(t, out, "82.5 kg")
	assert.Contains(t, out, "20.6567%, normal")
	assert.Contains(t, out, "2500 calories")
	assert.Contains(t, out, "55.5556 grams")
	assert.NotContains(t, out, "Hips:")
}

func TestRecordShowsHipsForFemale(t *testing.T) {
	var buf bytes.Buffer

	New(&buf).Record(&buf, sample("jane", types.GenderFemale))

	assert.Contains(t, buf.String(), "Hips:")
	assert.Contains(t, buf.String(), "101 cm")
	assert.Contains(t, buf.String(), "0%, none")
}

func TestAllFramesEveryRecord(t *testing.T) {
	var buf bytes.Buffer
	recs := []types.UserRecord{sample("jane", types.GenderFemale), sample("john", types.GenderMale)}

	New(&buf).All(&buf, recs)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\nDisplaying information for all users...\n"))
	assert.True(t, strings.HasSuffix(out, "Done.\n"))
	assert.Less(t, strings.Index(out, "User: jane"), strings.Index(out, "User: john"))
}

func TestOneNamesTheUser(t *testing.T) {
	var buf bytes.Buffer

	New(&buf).One(&buf, "john", sample("john", types.GenderMale))

	assert.Contains(t, buf.String(), "Displaying information for user john...")
}
