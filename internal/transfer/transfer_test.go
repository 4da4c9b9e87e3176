package transfer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
)

func setupStore(t *testing.T) storage.Provider {
	t.Helper()
	p := storage.New(filepath.Join(t.TempDir(), "gymsimple.json"))
	require.NoError(t, p.Init())
	t.Cleanup(func() { p.Close() })
	return p
}

func squat() models.ExerciseDetails {
	return models.ExerciseDetails{
		ID:             "ex-1",
		Name:           "Squat",
		TargetSets:     3,
		TargetReps:     5,
		TargetRestTime: 90,
		Weight:         models.Weight{Value: 100, Unit: models.WeightKg},
		Selected:       true,
		SelectionOrder: models.OrderPtr(1),
		Tags:           []string{"legs"},
	}
}

func session(id string, date time.Time) models.WorkoutSession {
	return models.WorkoutSession{
		ID:      id,
		Date:    date,
		EndDate: date.Add(30 * time.Minute),
		Exercises: []models.ExerciseData{{
			ID:       "ex-1",
			Name:     "Squat",
			Weight:   models.Weight{Value: 100, Unit: models.WeightKg},
			Sets:     []models.Set{{TargetReps: 5, ActualReps: 5}},
			RestTime: 90,
			Rating:   4,
		}},
	}
}

func TestExport_NothingToExport(t *testing.T) {
	svc := New(setupStore(t))
	var buf bytes.Buffer

	_, err := svc.ExportExercises(WriterSharer{W: &buf})
	assert.ErrorIs(t, err, ErrNothingToExport)
	_, err = svc.ExportSessions(WriterSharer{W: &buf})
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestExportImport_Exercises(t *testing.T) {
	src := setupStore(t)
	require.NoError(t, storage.SaveExercises(src, []models.ExerciseDetails{squat()}))

	dir := t.TempDir()
	path, err := New(src).ExportExercises(DirSharer{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, constants.ExercisesFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"id\": \"ex-1\"")
	assert.Contains(t, string(data), `"targetSets": "3"`)

	dst := setupStore(t)
	res, err := New(dst).ImportExercises(FilePicker{Path: path})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Total: 1}, res)

	got, err := storage.GetExercises(dst)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, squat(), got[0])

	tags, err := storage.GetTags(dst)
	require.NoError(t, err)
	assert.Equal(t, []string{"legs"}, tags)
}

func TestImportExercises_ImportedWinsAndRenumbers(t *testing.T) {
	p := setupStore(t)
	old := squat()
	old.Name = "Old Squat"
	bench := models.ExerciseDetails{
		ID: "ex-2", Name: "Bench", TargetSets: 3, TargetReps: 8, TargetRestTime: 60,
		Weight: models.Weight{Unit: models.WeightLbs}, Selected: true, SelectionOrder: models.OrderPtr(1),
	}
	require.NoError(t, storage.SaveExercises(p, []models.ExerciseDetails{old, bench}))

	file := `[{"id":"ex-1","name":"Squat","targetSets":"3","targetReps":"5","targetRestTime":"90",
		"weight":{"value":"100","unit":"kg"},"selected":true,"selectionOrder":1,"tags":["legs"]}]`
	res, err := New(p).ImportExercises(BytesPicker(file))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	got, err := storage.GetExercises(p)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Squat", got[0].Name)

	orders := map[int]bool{}
	for _, e := range got {
		n, ok := e.Order()
		require.True(t, ok)
		orders[n] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, orders)
}

func TestImportExercises_InvalidLeavesStoreUnchanged(t *testing.T) {
	p := setupStore(t)
	require.NoError(t, storage.SaveExercises(p, []models.ExerciseDetails{squat()}))
	before, err := p.GetItem(constants.KeyExercises)
	require.NoError(t, err)

	backups := 0
	svc := New(p, WithBackup(func() (string, error) {
		backups++
		return "backup", nil
	}))

	file := `[
		{"id":"ex-9","name":"Row","targetSets":"three","targetReps":"5","targetRestTime":"60",
		 "weight":{"value":"20","unit":"stone"},"selected":false},
		{"name":"Curl"}
	]`
	_, err = svc.ImportExercises(BytesPicker(file))
	require.Error(t, err)

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, "exercises", importErr.Kind)
	assert.GreaterOrEqual(t, len(importErr.Problems()), 3)
	assert.Contains(t, err.Error(), "invalid exercises file")

	got, err := storage.GetExercises(p)
	require.NoError(t, err)
	assert.Equal(t, []models.ExerciseDetails{squat()}, got)
	assert.Zero(t, backups)

	after, err := p.GetItem(constants.KeyExercises)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportExercises_NotAnArray(t *testing.T) {
	_, err := New(setupStore(t)).ImportExercises(BytesPicker(`{"id":"x"}`))
	var importErr *ImportError
	assert.True(t, errors.As(err, &importErr))
}

func TestImportExercises_EmptyWeightIsBodyweight(t *testing.T) {
	svc := New(setupStore(t))
	got, err := svc.ParseExercises([]byte(`[{"id":"a","name":"Pull-up","targetSets":"3","targetReps":"8",
		"targetRestTime":"60","weight":{"value":"","unit":"kg"},"selected":false}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Weight.Value)
}

func TestImport_Canceled(t *testing.T) {
	svc := New(setupStore(t))
	_, err := svc.ImportExercises(FilePicker{})
	assert.ErrorIs(t, err, ErrCanceled)
	_, err = svc.ImportSessions(BytesPicker(nil))
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestImportSessions_MergeSortsNewestFirst(t *testing.T) {
	p := setupStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	stale := session("s-2", base)
	stale.Exercises[0].Rating = 1
	require.NoError(t, storage.SaveSessions(p, []models.WorkoutSession{session("s-1", base.Add(-48*time.Hour)), stale}))

	src := setupStore(t)
	fresh := session("s-2", base)
	require.NoError(t, storage.SaveSessions(src, []models.WorkoutSession{fresh, session("s-3", base.Add(24*time.Hour))}))
	var buf bytes.Buffer
	_, err := New(src).ExportSessions(WriterSharer{W: &buf})
	require.NoError(t, err)

	backedUp := false
	res, err := New(p, WithBackup(func() (string, error) {
		backedUp = true
		return "b", nil
	})).ImportSessions(BytesPicker(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, backedUp)
	assert.Equal(t, ImportResult{Imported: 2, Total: 3}, res)

	got, err := storage.GetSessions(p)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"s-3", "s-2", "s-1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 4, got[1].Exercises[0].Rating)
}

func TestImportSessions_BackupFailureAborts(t *testing.T) {
	p := setupStore(t)
	file := `[{"id":"s-1","date":"2026-03-01","endDate":"2026-03-01T00:30:00Z","exercises":[]}]`
	_, err := New(p, WithBackup(func() (string, error) {
		return "", errors.New("disk full")
	})).ImportSessions(BytesPicker(file))
	require.ErrorContains(t, err, "disk full")

	got, err := storage.GetSessions(p)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseSessions_Problems(t *testing.T) {
	svc := New(setupStore(t))
	_, err := svc.ParseSessions([]byte(`[{"id":"s-1","date":"yesterday","exercises":[{"id":"e","name":"Squat",
		"weight":{"value":"5","unit":"kg"},"set":[{"targetReps":5}],"restTime":60,"rating":9}]}]`))

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	msgs := make([]string, 0, len(importErr.Problems()))
	for _, p := range importErr.Problems() {
		msgs = append(msgs, p.Error())
	}
	assert.Contains(t, msgs, `sessions[0].date: invalid date "yesterday"`)
	assert.Contains(t, msgs, "sessions[0].endDate: is required")
	assert.Contains(t, msgs, "sessions[0].exercises[0].set[0].actualReps: is required")
}

func TestParseSessions_WholeNumberFloats(t *testing.T) {
	svc := New(setupStore(t))
	got, err := svc.ParseSessions([]byte(`[{"id":"s-1","date":"2026-03-01T09:00:00Z","endDate":"2026-03-01T09:30:00Z",
		"exercises":[{"id":"e","name":"Squat","weight":{"value":"5","unit":"kg"},
		"set":[{"targetReps":5.0,"actualReps":4}],"restTime":15.0,"rating":3.0}]}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	ex := got[0].Exercises[0]
	assert.Equal(t, 15, ex.RestTime)
	assert.Equal(t, 3, ex.Rating)
	assert.Equal(t, []models.Set{{TargetReps: 5, ActualReps: 4}}, ex.Sets)
}

func TestImportSessions_FractionalNumbersRejected(t *testing.T) {
	p := setupStore(t)
	require.NoError(t, storage.SaveSessions(p, []models.WorkoutSession{session("s-1", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))}))
	before, err := p.GetItem(constants.KeyWorkoutSessions)
	require.NoError(t, err)

	file := `[{"id":"s-2","date":"2026-03-02T09:00:00Z","endDate":"2026-03-02T09:30:00Z",
		"exercises":[{"id":"e","name":"Squat","weight":{"value":"5","unit":"kg"},
		"set":[{"targetReps":5,"actualReps":4.5}],"restTime":15.5,"rating":3}]}]`
	_, err = New(p).ImportSessions(BytesPicker(file))

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	msgs := make([]string, 0, len(importErr.Problems()))
	for _, p := range importErr.Problems() {
		msgs = append(msgs, p.Error())
	}
	assert.Contains(t, msgs, "sessions[0].exercises[0].restTime: must be a whole number, got 15.5")
	assert.Contains(t, msgs, "sessions[0].exercises[0].set[0].actualReps: must be a whole number, got 4.5")

	after, err := p.GetItem(constants.KeyWorkoutSessions)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
