// Package stats derives totals, ratings and insights from finished sessions.
package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/gymsimple/internal/models"
)

// Summary is the headline numbers of one session
type Summary struct {
	TotalSets     int
	TotalReps     int
	AverageRating float64
	EstimatedRest time.Duration // sets x rest time, summed over exercises
	Duration      time.Duration
}

// ExerciseSummary is the per-exercise breakdown
type ExerciseSummary struct {
	TotalTargetReps int
	TotalActualReps int
	CompletionRate  float64 // percent
	AvgRepsPerSet   float64
}

func TotalSets(s models.WorkoutSession) int {
	total := 0
	for _, ex := range s.Exercises {
		total += len(ex.Sets)
	}
	return total
}

func TotalReps(s models.WorkoutSession) int {
	total := 0
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			total += set.ActualReps
		}
	}
	return total
}

// AverageRating is the mean over rated exercises, 0 when none are rated
func AverageRating(s models.WorkoutSession) float64 {
	sum, n := 0, 0
	for _, ex := range s.Exercises {
		if ex.Rating > 0 {
			sum += ex.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// CompletionRate is actual over target reps as a percentage, 0 when there is no target
func CompletionRate(ex models.ExerciseData) float64 {
	return Exercise(ex).CompletionRate
}

// Exercise summarizes one completed exercise
func Exercise(ex models.ExerciseData) ExerciseSummary {
	var out ExerciseSummary
	for _, set := range ex.Sets {
		out.TotalTargetReps += set.TargetReps
		out.TotalActualReps += set.ActualReps
	}
	if out.TotalTargetReps > 0 {
		out.CompletionRate = float64(out.TotalActualReps) / float64(out.TotalTargetReps) * 100
	}
	if len(ex.Sets) > 0 {
		out.AvgRepsPerSet = float64(out.TotalActualReps) / float64(len(ex.Sets))
	}
	return out
}

func Summarize(s models.WorkoutSession) Summary {
	rest := 0
	for _, ex := range s.Exercises {
		rest += len(ex.Sets) * ex.RestTime
	}
	return Summary{
		TotalSets:     TotalSets(s),
		TotalReps:     TotalReps(s),
		AverageRating: AverageRating(s),
		EstimatedRest: time.Duration(rest) * time.Second,
		Duration:      s.Duration(),
	}
}

// InsightKind identifies a performance insight
type InsightKind string

const (
	InsightExcellent   InsightKind = "excellent"
	InsightChallenging InsightKind = "challenging"
	InsightHighVolume  InsightKind = "high_volume"
	InsightPerfect     InsightKind = "perfect"
)

type Insight struct {
	Kind        InsightKind
	Title       string
	Description string
}

const (
	excellentRating   = 4.0
	challengingRating = 2.5
	highVolumeReps    = 100
	perfectCompletion = 95.0
)

// Insights applies the rating, volume and completion rules; each rule adds at most one insight
func Insights(s models.WorkoutSession) []Insight {
	var out []Insight
	avg := AverageRating(s)

	switch {
	case avg >= excellentRating:
		out = append(out, Insight{
			Kind:        InsightExcellent,
			Title:       "Excellent Session!",
			Description: fmt.Sprintf("Average rating of %.1f/5 - you crushed it!", avg),
		})
	case avg < challengingRating:
		out = append(out, Insight{
			Kind:        InsightChallenging,
			Title:       "Challenging Day",
			Description: "Lower ratings suggest this was a tough session. Rest up!",
		})
	}

	if reps := TotalReps(s); reps > highVolumeReps {
		out = append(out, Insight{
			Kind:        InsightHighVolume,
			Title:       "High Volume",
			Description: fmt.Sprintf("%d total reps - great work capacity!", reps),
		})
	}

	if len(s.Exercises) > 0 {
		sum := 0.0
		for _, ex := range s.Exercises {
			sum += CompletionRate(ex)
		}
		if completion := sum / float64(len(s.Exercises)); completion >= perfectCompletion {
			out = append(out, Insight{
				Kind:        InsightPerfect,
				Title:       "Perfect Execution",
				Description: fmt.Sprintf("%.0f%% target reps achieved!", completion),
			})
		}
	}
	return out
}

// HistoryTotals aggregates the whole session list
type HistoryTotals struct {
	Workouts  int
	Exercises int
	Sets      int
	Reps      int
}

func History(sessions []models.WorkoutSession) HistoryTotals {
	out := HistoryTotals{Workouts: len(sessions)}
	for _, s := range sessions {
		out.Exercises += len(s.Exercises)
		out.Sets += TotalSets(s)
		out.Reps += TotalReps(s)
	}
	return out
}
