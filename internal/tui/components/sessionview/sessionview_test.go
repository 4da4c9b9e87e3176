package sessionview

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/gymsimple/internal/models"
)

func TestRender(t *testing.T) {
	start := time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC)
	s := models.WorkoutSession{
		ID:      "s1",
		Date:    start,
		EndDate: start.Add(42 * time.Minute),
		Exercises: []models.ExerciseData{{
			ID:       "e1",
			Name:     "Row",
			Weight:   models.Weight{Value: 60, Unit: models.WeightKg},
			Sets:     []models.Set{{TargetReps: 10, ActualReps: 10}, {TargetReps: 10, ActualReps: 8}},
			RestTime: 90,
			Rating:   4,
		}},
	}

	out := Render(s)
	for _, want := range []string{"42:00", "Row", "60 kg", "10/10 8/10", "90% complete", "★★★★☆"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
}

func TestEmptyModel(t *testing.T) {
	m := New(40, 10)
	if !strings.Contains(m.View(), "No session selected.") {
		t.Errorf("View() = %q, want placeholder", m.View())
	}
}
