// Package catalog manages the user's exercise library, its selection order and tags.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/validation"
)

var ErrNotFound = errors.New("exercise not found")

// Filter narrows the catalog by name and tags
type Filter struct {
	Search string
	Tags   []string
}

// Matches reports whether e contains Search (case-insensitive) and carries any of Tags.
// An empty tag list matches everything.
func (f Filter) Matches(e models.ExerciseDetails) bool {
	if !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.Tags) == 0 {
		return true
	}
	return slices.ContainsFunc(f.Tags, e.HasTag)
}

// Catalog is the exercise library stored under the exercises key
type Catalog struct {
	store     storage.Provider
	validator *validation.Validator
	newID     func() string
}

func New(store storage.Provider) *Catalog {
	return &Catalog{
		store:     store,
		validator: validation.New(),
		newID:     func() string { return uuid.New().String() },
	}
}

func (c *Catalog) List() ([]models.ExerciseDetails, error) {
	exercises, err := storage.GetExercises(c.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises: %w", err)
	}
	return exercises, nil
}

func (c *Catalog) Get(id string) (models.ExerciseDetails, error) {
	exercises, err := c.List()
	if err != nil {
		return models.ExerciseDetails{}, err
	}
	i := indexOf(exercises, id)
	if i < 0 {
		return models.ExerciseDetails{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return exercises[i], nil
}

// Add appends a new exercise, generating an id when none is set. A new entry
// marked selected is placed at the end of the current selection.
func (c *Catalog) Add(e models.ExerciseDetails) (models.ExerciseDetails, error) {
	exercises, err := c.List()
	if err != nil {
		return models.ExerciseDetails{}, err
	}

	if e.ID == "" {
		e.ID = c.newID()
	}
	if indexOf(exercises, e.ID) >= 0 {
		return models.ExerciseDetails{}, fmt.Errorf("exercise already exists: %s", e.ID)
	}
	e.SelectionOrder = nil
	if e.Selected {
		e.SelectionOrder = models.OrderPtr(maxOrder(exercises) + 1)
	}
	e.Tags = normalizeTags(e.Tags)

	if result := c.validator.ValidateExercise(e); result.HasConflicts() {
		return models.ExerciseDetails{}, result.Err()
	}

	if err := storage.SaveExercises(c.store, append(exercises, e)); err != nil {
		return models.ExerciseDetails{}, fmt.Errorf("failed to save exercise: %w", err)
	}
	if err := c.mergeTags(e.Tags); err != nil {
		return e, err
	}
	return e, nil
}

// Update replaces the details of an existing exercise. Selection state is owned
// by the catalog and is kept from the stored entry.
func (c *Catalog) Update(e models.ExerciseDetails) error {
	exercises, err := c.List()
	if err != nil {
		return err
	}
	i := indexOf(exercises, e.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}

	e.Selected = exercises[i].Selected
	e.SelectionOrder = exercises[i].SelectionOrder
	e.Tags = normalizeTags(e.Tags)
	if result := c.validator.ValidateExercise(e); result.HasConflicts() {
		return result.Err()
	}

	exercises[i] = e
	if err := storage.SaveExercises(c.store, exercises); err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}
	return c.mergeTags(e.Tags)
}

// Delete removes an exercise. Deleting a selected exercise closes the gap in the selection order.
func (c *Catalog) Delete(id string) error {
	exercises, err := c.List()
	if err != nil {
		return err
	}
	i := indexOf(exercises, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := exercises[i]
	exercises = slices.Delete(exercises, i, i+1)
	if order, ok := removed.Order(); ok && removed.Selected {
		shiftDown(exercises, order)
	}

	if err := storage.SaveExercises(c.store, exercises); err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	return nil
}

// ToggleSelection selects an unselected exercise at the end of the order, or deselects
// a selected one and closes the gap it leaves.
func (c *Catalog) ToggleSelection(id string) (models.ExerciseDetails, error) {
	exercises, err := c.List()
	if err != nil {
		return models.ExerciseDetails{}, err
	}
	i := indexOf(exercises, id)
	if i < 0 {
		return models.ExerciseDetails{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	toggle(exercises, i)
	if err := storage.SaveExercises(c.store, exercises); err != nil {
		return models.ExerciseDetails{}, fmt.Errorf("failed to save selection: %w", err)
	}
	return exercises[i], nil
}

// SelectAll selects every unselected exercise matching f in catalog order and
// returns how many were added to the selection
func (c *Catalog) SelectAll(f Filter) (int, error) {
	exercises, err := c.List()
	if err != nil {
		return 0, err
	}

	added := 0
	for i := range exercises {
		if !exercises[i].Selected && f.Matches(exercises[i]) {
			toggle(exercises, i)
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}
	if err := storage.SaveExercises(c.store, exercises); err != nil {
		return 0, fmt.Errorf("failed to save selection: %w", err)
	}
	return added, nil
}

// ClearSelection deselects every exercise
func (c *Catalog) ClearSelection() error {
	exercises, err := c.List()
	if err != nil {
		return err
	}
	for i := range exercises {
		exercises[i].Selected = false
		exercises[i].SelectionOrder = nil
	}
	if err := storage.SaveExercises(c.store, exercises); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// Selected returns the workout plan: selected exercises by ascending order, unordered entries last
func (c *Catalog) Selected() ([]models.ExerciseDetails, error) {
	exercises, err := c.List()
	if err != nil {
		return nil, err
	}
	var selected []models.ExerciseDetails
	for _, e := range exercises {
		if e.Selected {
			selected = append(selected, e)
		}
	}
	SortBySelectionOrder(selected)
	return selected, nil
}

// Filter returns the exercises matching search and tags, in catalog order
func (c *Catalog) Filter(search string, tags []string) ([]models.ExerciseDetails, error) {
	exercises, err := c.List()
	if err != nil {
		return nil, err
	}
	f := Filter{Search: search, Tags: tags}
	out := make([]models.ExerciseDetails, 0, len(exercises))
	for _, e := range exercises {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// SortBySelectionOrder orders exercises by ascending selection order in place.
// Entries without an order keep their relative position after the ordered ones.
func SortBySelectionOrder(exercises []models.ExerciseDetails) {
	slices.SortStableFunc(exercises, compareOrder)
}

func compareOrder(a, b models.ExerciseDetails) int {
	ao, aok := a.Order()
	bo, bok := b.Order()
	switch {
	case aok && bok:
		return cmp.Compare(ao, bo)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}

func toggle(exercises []models.ExerciseDetails, i int) {
	e := &exercises[i]
	if !e.Selected {
		e.Selected = true
		e.SelectionOrder = models.OrderPtr(maxOrder(exercises) + 1)
		return
	}

	order, ok := e.Order()
	e.Selected = false
	e.SelectionOrder = nil
	if ok {
		shiftDown(exercises, order)
	}
}

func shiftDown(exercises []models.ExerciseDetails, removed int) {
	for j := range exercises {
		if o, ok := exercises[j].Order(); ok && exercises[j].Selected && o > removed {
			exercises[j].SelectionOrder = models.OrderPtr(o - 1)
		}
	}
}

func maxOrder(exercises []models.ExerciseDetails) int {
	highest := 0
	for _, e := range exercises {
		if o, ok := e.Order(); ok && e.Selected && o > highest {
			highest = o
		}
	}
	return highest
}

func indexOf(exercises []models.ExerciseDetails, id string) int {
	return slices.IndexFunc(exercises, func(e models.ExerciseDetails) bool { return e.ID == id })
}

// Renumber reassigns orders 1..N over the selected exercises, keeping their relative
// order, and clears stale orders on unselected entries
func Renumber(exercises []models.ExerciseDetails) {
	var selected []int
	for i := range exercises {
		if exercises[i].Selected {
			selected = append(selected, i)
		} else {
			exercises[i].SelectionOrder = nil
		}
	}
	slices.SortStableFunc(selected, func(a, b int) int {
		return compareOrder(exercises[a], exercises[b])
	})
	for rank, i := range selected {
		exercises[i].SelectionOrder = models.OrderPtr(rank + 1)
	}
}
