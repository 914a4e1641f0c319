package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/healthassist/healthassist/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const header = "name,gender,age,weight,waist,neck,height,hip,bfp,group,calories,carbs,protein,fat,lifestyle"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func reversed(in []types.UserRecord) []types.UserRecord {
	out := make([]types.UserRecord, len(in))
	for i, rec := range in {
		out[len(in)-1-i] = rec
	}
	return out
}

func TestSaveLoadRoundTrip(t *testing.T) {
	male := record("john", types.GenderMale)
	male.BodyFat = types.BodyFat{Percentage: 20.656693134107968, Group: types.BodyFatHigh}
	male.DailyCalories = 2500
	male.CarbsG = 312.5
	male.ProteinG = 187.5
	male.FatG = 2500 * 0.2 / 9

	female := record("jane", types.GenderFemale)
	female.WeightKg = 0.1 + 0.2
	female.BodyFat = types.BodyFat{Group: ""}

	unset := record("jack", types.GenderMale)

	src := NewRecordStore()
	src.Insert(male)
	src.Insert(female)
	src.Insert(unset)

	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, src.Save(path))

	dst := NewRecordStore()
	dst.Insert(record("stale", types.GenderMale))
	require.NoError(t, dst.Load(path))

	assert.Equal(t, reversed(src.All()), dst.All())
}

func TestSaveWritesHeaderAndTraversalOrder(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))
	s.Insert(record("jane", types.GenderFemale))

	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, header, lines[0])
	assert.Equal(t, "jane,female,30,70,80,36,170,95,0,none,0,0,0,0,sedentary", lines[1])
	assert.Equal(t, "john,male,30,70,80,36,170,0,0,none,0,0,0,0,sedentary", lines[2])
}

func TestSaveFileOrderKeepsRowsAcrossLoadCycles(t *testing.T) {
	rows := header + "\n" +
		"first,male,30,70,80,36,170,0,0,none,0,0,0,0,sedentary\n" +
		"second,female,40,60,75,33,160,98,0,none,0,0,0,0,active\n"
	path := writeFile(t, "users.csv", rows)

	for range 2 {
		s := NewRecordStore()
		require.NoError(t, s.Load(path))
		assert.Equal(t, []string{"second", "first"}, s.Names())
		require.NoError(t, s.SaveFileOrder(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rows, string(data))
	}
}

func TestSaveFileOrderAppendsNewRecords(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))
	s.Insert(record("jane", types.GenderFemale))

	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, s.SaveFileOrder(path))
	assert.Equal(t, []string{"jane", "john"}, s.Names())

	reloaded := NewRecordStore()
	require.NoError(t, reloaded.Load(path))
	assert.Equal(t, s.All(), reloaded.All())

	assert.ErrorIs(t, s.SaveFileOrder(filepath.Join(t.TempDir(), "users.txt")), ErrNotCSV)
}

func TestLoadReversesFileOrder(t *testing.T) {
	path := writeFile(t, "users.csv", header+"\n"+
		"first,male,30,70,80,36,170,0,0,none,0,0,0,0,sedentary\n"+
		"second,female,40,60,75,33,160,98,0,none,0,0,0,0,active\n")

	s := NewRecordStore()
	require.NoError(t, s.Load(path))

	assert.Equal(t, []string{"second", "first"}, s.Names())
	rec, err := s.Find("second")
	require.NoError(t, err)
	assert.Equal(t, 98.0, rec.HipCm)
	assert.Equal(t, types.LifestyleActive, rec.Lifestyle)
}

func TestLoadRejectedExtensionClearsStore(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	err := s.Load(writeFile(t, "users.txt", header+"\n"))

	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Zero(t, s.Len())
}

func TestLoadMissingFileClearsStore(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	err := s.Load(filepath.Join(t.TempDir(), "missing.csv"))

	assert.ErrorIs(t, err, ErrFileAccess)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Zero(t, s.Len())
}

func TestSaveRejectsExtensionBeforeIO(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	path := filepath.Join(t.TempDir(), "users.json")
	err := s.Save(path)

	assert.ErrorIs(t, err, ErrNotCSV)
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
	assert.Equal(t, 1, s.Len())
}

func TestSaveUnwritablePath(t *testing.T) {
	s := NewRecordStore()

	err := s.Save(filepath.Join(t.TempDir(), "missing-dir", "users.csv"))

	assert.ErrorIs(t, err, ErrFileAccess)
}

func TestLoadStrictFailsWholeLoad(t *testing.T) {
	path := writeFile(t, "users.csv", header+"\n"+
		"first,male,30,70,80,36,170,0,0,none,0,0,0,0,sedentary\n"+
		"second,female,forty,60,75,33,160,98,0,none,0,0,0,0,active\n")

	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))
	err := s.Load(path)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, "age", parseErr.Column)
	assert.Equal(t, "forty", parseErr.Value)
	assert.Zero(t, s.Len())
}

func TestLoadStrictRejectsShortLine(t *testing.T) {
	path := writeFile(t, "users.csv", header+"\n"+"first,male,30\n")

	s := NewRecordStore()
	err := s.Load(path)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Zero(t, s.Len())
}

func TestLoadLenientSkipsMalformedLines(t *testing.T) {
	path := writeFile(t, "users.csv", header+"\n"+
		"first,male,30,70,80,36,170,0,0,none,0,0,0,0,sedentary\n"+
		"broken,female,40,sixty,75,33,160,98,0,none,0,0,0,0,active\n"+
		"short,male\n"+
		"third,male,50,90,100,40,180,0,0,none,0,0,0,0,moderate\n")

	core, logs := observer.New(zapcore.WarnLevel)
	s := NewRecordStore(WithLenientLoad(true), WithLogger(zap.New(core)))
	require.NoError(t, s.Load(path))

	assert.Equal(t, []string{"third", "first"}, s.Names())
	assert.Equal(t, 2, logs.FilterMessage("skipping malformed table line").Len())
}

func TestLoadEmptyTable(t *testing.T) {
	s := NewRecordStore()
	s.Insert(record("john", types.GenderMale))

	require.NoError(t, s.Load(writeFile(t, "users.csv", header+"\n")))
	assert.Zero(t, s.Len())
}
