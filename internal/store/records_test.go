package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/healthassist/healthassist/internal/prompt"
	"github.com/healthassist/healthassist/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name string, gender types.Gender) types.UserRecord {
	rec := types.NewUserRecord()
	rec.Name = name
	rec.Gender = gender
	rec.Age = 30
	rec.WeightKg = 70
	rec.WaistCm = 80
	rec.NeckCm = 36
	rec.HeightCm = 170
	rec.Lifestyle = types.LifestyleSedentary
	if gender == types.GenderFemale {
		rec.HipCm = 95
	}
	return rec
}

func TestInsertPrepends(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))
	s.Insert(record("jane", types.GenderFemale))
	s.Insert(record("jack", types.GenderMale))

	assert.Equal(t, []string{"jack", "jane", "john"}, s.Names())
	assert.Equal(t, 3, s.Len())
}

func TestFindReturnsFirstMatchInTraversalOrder(t *testing.T) {
	s := NewRecordStore()
	older := record("sam", types.GenderMale)
	older.Age = 60
	newer := record("sam", types.GenderMale)
	newer.Age = 25
	s.Insert(older)
	s.Insert(newer)

	rec, err := s.Find("sam")
	require.NoError(t, err)
	assert.Equal(t, 25, rec.Age)

	_, err = s.Find("Sam")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindReturnsLiveRecord(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	rec, err := s.Find("john")
	require.NoError(t, err)
	rec.DailyCalories = 2400

	assert.Equal(t, 2400.0, s.All()[0].DailyCalories)
}

func TestAllReturnsSnapshots(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	all := s.All()
	all[0].Age = 99

	rec, err := s.Find("john")
	require.NoError(t, err)
	assert.Equal(t, 30, rec.Age)
}

func TestDeleteThenFind(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))
	s.Insert(record("jack", types.GenderMale))

	require.NoError(t, s.Delete("jack"))

	_, err := s.Find("jack")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"john"}, s.Names())
}

func TestDeleteMissing(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	err := s.Delete("jack")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestDeleteRemovesOnlyFirstDuplicate(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("sam", types.GenderMale))
	s.Insert(record("sam", types.GenderFemale))

	require.NoError(t, s.Delete("sam"))

	rec, err := s.Find("sam")
	require.NoError(t, err)
	assert.Equal(t, types.GenderMale, rec.Gender)
}

func TestCreateFromPrompts(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("jane female 25 60 80 34 165 100 active"), &out)
	rec, err := s.Create(p, &out)
	require.NoError(t, err)

	assert.Equal(t, "jane", rec.Name)
	assert.Equal(t, []string{"jane", "john"}, s.Names())
	assert.Contains(t, out.String(), "User jane has been added.")
}

func TestCreateStopsAtEndOfInput(t *testing.T) {
	s := NewRecordStore()

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("jane female"), &out)
	_, err := s.Create(p, &out)

	assert.Error(t, err)
	assert.Zero(t, s.Len())
}

func TestStoresAreIndependent(t *testing.T) {
	a := NewRecordStore()
	b := NewRecordStore()
	a.Insert(record("john", types.GenderMale))

	_, err := b.Find("john")
	assert.ErrorIs(t, err, ErrNotFound)
}
