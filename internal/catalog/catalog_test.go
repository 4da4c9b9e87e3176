package catalog

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/validation"
)

func setupCatalog(t *testing.T) (*Catalog, func()) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "gymsimple.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}
	return New(store), func() { store.Close() }
}

func exercise(name string, tags ...string) models.ExerciseDetails {
	return models.ExerciseDetails{
		Name:           name,
		TargetSets:     3,
		TargetReps:     10,
		TargetRestTime: 60,
		Weight:         models.Weight{Value: 20, Unit: models.WeightKg},
		Tags:           tags,
	}
}

func seed(t *testing.T, c *Catalog, names ...string) []models.ExerciseDetails {
	t.Helper()
	var out []models.ExerciseDetails
	for _, n := range names {
		e, err := c.Add(exercise(n))
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func orders(t *testing.T, c *Catalog) map[string]int {
	t.Helper()
	exercises, err := c.List()
	require.NoError(t, err)
	out := map[string]int{}
	for _, e := range exercises {
		if o, ok := e.Order(); ok {
			out[e.Name] = o
		}
	}
	return out
}

func TestAdd_AssignsIDAndPersists(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	added, err := c.Add(exercise("Squat", "legs", " legs ", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, []string{"legs"}, added.Tags)

	got, err := c.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	tags, err := c.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"legs"}, tags)
}

func TestAdd_RejectsInvalidWithoutWriting(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	bad := exercise("Plank")
	bad.TargetRestTime = 2
	_, err := c.Add(bad)
	assert.ErrorContains(t, err, "targetRestTime")

	list, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdate_KeepsSelectionState(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	all := seed(t, c, "Squat")
	_, err := c.ToggleSelection(all[0].ID)
	require.NoError(t, err)

	edit := all[0]
	edit.Name = "Front Squat"
	edit.Selected = false
	edit.SelectionOrder = nil
	require.NoError(t, c.Update(edit))

	got, err := c.Get(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Front Squat", got.Name)
	assert.True(t, got.Selected)
	assert.Equal(t, 1, *got.SelectionOrder)

	assert.ErrorIs(t, c.Update(exercise("Ghost")), ErrNotFound)
}

func TestToggleSelection_AssignsAndCompactsOrder(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	all := seed(t, c, "A", "B", "C")
	for _, e := range all {
		_, err := c.ToggleSelection(e.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3}, orders(t, c))

	b, err := c.ToggleSelection(all[1].ID)
	require.NoError(t, err)
	assert.False(t, b.Selected)
	assert.Nil(t, b.SelectionOrder)
	assert.Equal(t, map[string]int{"A": 1, "C": 2}, orders(t, c))

	_, err = c.ToggleSelection(all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "C": 2, "B": 3}, orders(t, c))

	selected, err := c.Selected()
	require.NoError(t, err)
	names := []string{}
	for _, e := range selected {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"A", "C", "B"}, names)

	_, err = c.ToggleSelection("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleSelection_OrdersStayContiguous(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	all := seed(t, c, "A", "B", "C", "D", "E", "F")
	rng := rand.New(rand.NewPCG(7, 11))
	v := validation.New()

	for step := 0; step < 60; step++ {
		target := all[rng.IntN(len(all))]
		_, err := c.ToggleSelection(target.ID)
		require.NoError(t, err)

		exercises, err := c.List()
		require.NoError(t, err)
		result := v.ValidateSelection(exercises)
		require.False(t, result.HasConflicts(), "step %d: %s", step, result.FormatReport())
	}
}

func TestDelete_ClosesOrderGap(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	all := seed(t, c, "A", "B", "C")
	for _, e := range all {
		_, err := c.ToggleSelection(e.ID)
		require.NoError(t, err)
	}

	require.NoError(t, c.Delete(all[0].ID))
	assert.Equal(t, map[string]int{"B": 1, "C": 2}, orders(t, c))
	assert.ErrorIs(t, c.Delete(all[0].ID), ErrNotFound)
}

func TestSelectAllAndClear(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	for _, e := range []models.ExerciseDetails{
		exercise("Bench Press", "push"),
		exercise("Pull-up", "pull"),
		exercise("Push Press", "push"),
	} {
		_, err := c.Add(e)
		require.NoError(t, err)
	}

	// Pull-up was selected first and keeps order 1
	list, err := c.List()
	require.NoError(t, err)
	_, err = c.ToggleSelection(list[1].ID)
	require.NoError(t, err)

	added, err := c.SelectAll(Filter{Tags: []string{"push"}})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, map[string]int{"Pull-up": 1, "Bench Press": 2, "Push Press": 3}, orders(t, c))

	added, err = c.SelectAll(Filter{})
	require.NoError(t, err)
	assert.Zero(t, added)

	require.NoError(t, c.ClearSelection())
	selected, err := c.Selected()
	require.NoError(t, err)
	assert.Empty(t, selected)
	assert.Empty(t, orders(t, c))
}

func TestFilter(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	for _, e := range []models.ExerciseDetails{
		exercise("Bench Press", "push", "chest"),
		exercise("Leg Press", "legs"),
		exercise("Deadlift", "pull", "legs"),
	} {
		_, err := c.Add(e)
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		tags   []string
		want   []string
	}{
		{"", nil, []string{"Bench Press", "Leg Press", "Deadlift"}},
		{"PRESS", nil, []string{"Bench Press", "Leg Press"}},
		{"", []string{"legs"}, []string{"Leg Press", "Deadlift"}},
		{"", []string{"chest", "pull"}, []string{"Bench Press", "Deadlift"}},
		{"press", []string{"legs"}, []string{"Leg Press"}},
		{"row", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q %v", tt.search, tt.tags), func(t *testing.T) {
			got, err := c.Filter(tt.search, tt.tags)
			require.NoError(t, err)
			names := []string{}
			for _, e := range got {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSortBySelectionOrder_UnsetLast(t *testing.T) {
	exercises := []models.ExerciseDetails{
		{Name: "none-1", Selected: true},
		{Name: "third", Selected: true, SelectionOrder: models.OrderPtr(3)},
		{Name: "none-2", Selected: true},
		{Name: "first", Selected: true, SelectionOrder: models.OrderPtr(1)},
	}
	SortBySelectionOrder(exercises)

	var names []string
	for _, e := range exercises {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"first", "third", "none-1", "none-2"}, names)
}

func TestTags(t *testing.T) {
	c, cleanup := setupCatalog(t)
	defer cleanup()

	require.NoError(t, c.AddTag("  push "))
	require.NoError(t, c.AddTag("core"))
	require.NoError(t, c.AddTag("push"))
	require.NoError(t, c.AddTag("   "))

	tags, err := c.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "push"}, tags)

	require.NoError(t, c.RemoveTag("core"))
	require.NoError(t, c.RemoveTag("core"))
	tags, err = c.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"push"}, tags)

	require.NoError(t, c.MergeTags([]string{"legs", "push", "arms"}))
	tags, err = c.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"arms", "legs", "push"}, tags)
}

func TestRenumber(t *testing.T) {
	exercises := []models.ExerciseDetails{
		{Name: "A", Selected: true, SelectionOrder: models.OrderPtr(4)},
		{Name: "B", Selected: false, SelectionOrder: models.OrderPtr(2)},
		{Name: "C", Selected: true},
		{Name: "D", Selected: true, SelectionOrder: models.OrderPtr(4)},
		{Name: "E", Selected: true, SelectionOrder: models.OrderPtr(1)},
	}
	Renumber(exercises)

	got := map[string]int{}
	for _, e := range exercises {
		if o, ok := e.Order(); ok {
			got[e.Name] = o
		}
	}
	assert.Equal(t, map[string]int{"E": 1, "A": 2, "D": 3, "C": 4}, got)
	assert.False(t, validation.New().ValidateSelection(exercises).HasConflicts())
}
