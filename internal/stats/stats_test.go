package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/gymsimple/internal/models"
)

func data(rating, rest int, sets ...models.Set) models.ExerciseData {
	return models.ExerciseData{Name: "x", Rating: rating, RestTime: rest, Sets: sets}
}

func set(target, actual int) models.Set {
	return models.Set{TargetReps: target, ActualReps: actual}
}

func TestAverageRating_IgnoresUnrated(t *testing.T) {
	s := models.WorkoutSession{Exercises: []models.ExerciseData{
		data(5, 60), data(3, 60), data(0, 60),
	}}
	assert.Equal(t, 4.0, AverageRating(s))
	assert.Equal(t, 0.0, AverageRating(models.WorkoutSession{Exercises: []models.ExerciseData{data(0, 60)}}))
	assert.Equal(t, 0.0, AverageRating(models.WorkoutSession{}))
}

func TestSummarize(t *testing.T) {
	start := time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC)
	s := models.WorkoutSession{
		Date:    start,
		EndDate: start.Add(42 * time.Minute),
		Exercises: []models.ExerciseData{
			data(4, 15, set(10, 10), set(10, 8)),
			data(0, 60, set(5, 5)),
		},
	}

	got := Summarize(s)
	assert.Equal(t, Summary{
		TotalSets:     3,
		TotalReps:     23,
		AverageRating: 4,
		EstimatedRest: 90 * time.Second,
		Duration:      42 * time.Minute,
	}, got)
}

func TestExercise(t *testing.T) {
	got := Exercise(data(3, 30, set(10, 10), set(10, 5)))
	assert.Equal(t, 20, got.TotalTargetReps)
	assert.Equal(t, 15, got.TotalActualReps)
	assert.Equal(t, 75.0, got.CompletionRate)
	assert.Equal(t, 7.5, got.AvgRepsPerSet)

	empty := Exercise(data(0, 30))
	assert.Zero(t, empty.CompletionRate)
	assert.Zero(t, empty.AvgRepsPerSet)
	assert.Zero(t, CompletionRate(data(0, 30, set(0, 4))))
}

func kinds(insights []Insight) []InsightKind {
	out := []InsightKind{}
	for _, in := range insights {
		out = append(out, in.Kind)
	}
	return out
}

func TestInsights(t *testing.T) {
	tests := []struct {
		name      string
		exercises []models.ExerciseData
		want      []InsightKind
	}{
		{
			name:      "excellent and perfect",
			exercises: []models.ExerciseData{data(5, 60, set(10, 10)), data(4, 60, set(10, 10))},
			want:      []InsightKind{InsightExcellent, InsightPerfect},
		},
		{
			name:      "challenging",
			exercises: []models.ExerciseData{data(2, 60, set(10, 5))},
			want:      []InsightKind{InsightChallenging},
		},
		{
			name:      "unrated counts as challenging",
			exercises: []models.ExerciseData{data(0, 60, set(10, 5))},
			want:      []InsightKind{InsightChallenging},
		},
		{
			name:      "skipped log records target reps unrated",
			exercises: []models.ExerciseData{data(0, 60, set(10, 10))},
			want:      []InsightKind{InsightChallenging, InsightPerfect},
		},
		{
			name:      "middling rating",
			exercises: []models.ExerciseData{data(3, 60, set(10, 9))},
			want:      []InsightKind{},
		},
		{
			name: "high volume",
			exercises: []models.ExerciseData{
				data(3, 60, set(60, 51), set(60, 50)),
			},
			want: []InsightKind{InsightHighVolume},
		},
		{
			name:      "completion threshold is inclusive",
			exercises: []models.ExerciseData{data(3, 60, set(20, 19))},
			want:      []InsightKind{InsightPerfect},
		},
		{
			name:      "no exercises",
			exercises: nil,
			want:      []InsightKind{InsightChallenging},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insights(models.WorkoutSession{Exercises: tt.exercises})
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestInsights_Descriptions(t *testing.T) {
	got := Insights(models.WorkoutSession{Exercises: []models.ExerciseData{
		data(5, 60, set(120, 120)),
	}})
	assert.Equal(t, "Average rating of 5.0/5 - you crushed it!", got[0].Description)
	assert.Equal(t, "120 total reps - great work capacity!", got[1].Description)
	assert.Equal(t, "100% target reps achieved!", got[2].Description)
}

func TestHistory(t *testing.T) {
	sessions := []models.WorkoutSession{
		{Exercises: []models.ExerciseData{data(0, 0, set(5, 5), set(5, 4))}},
		{Exercises: []models.ExerciseData{data(0, 0, set(8, 8)), data(0, 0)}},
	}
	assert.Equal(t, HistoryTotals{Workouts: 2, Exercises: 3, Sets: 3, Reps: 17}, History(sessions))
	assert.Equal(t, HistoryTotals{}, History(nil))
}
