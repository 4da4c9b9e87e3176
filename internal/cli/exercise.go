package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/gymsimple/internal/catalog"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/validation"
)

type ExerciseAddCmd struct {
	Name   string   `arg:"" help:"Exercise name."`
	Sets   string   `help:"Target sets." default:"3"`
	Reps   string   `help:"Target reps per set." default:"10"`
	Rest   string   `help:"Rest between sets in seconds." default:"60"`
	Weight string   `help:"Weight value." default:"0"`
	Unit   string   `help:"Weight unit." enum:"kg,lbs" default:"kg"`
	Tags   []string `help:"Tags to attach." sep:","`
	Select bool     `help:"Add the exercise to the current workout selection."`
}

func (c *ExerciseAddCmd) Run(ctx *Context) error {
	e, result := validation.New().ParseExerciseForm(validation.ExerciseForm{
		Name:           c.Name,
		TargetSets:     c.Sets,
		TargetReps:     c.Reps,
		TargetRestTime: c.Rest,
		WeightValue:    c.Weight,
		WeightUnit:     c.Unit,
	})
	if result.HasConflicts() {
		return result.Err()
	}
	e.Tags = c.Tags
	e.Selected = c.Select

	saved, err := ctx.Catalog().Add(e)
	if err != nil {
		return err
	}
	fmt.Printf("Added exercise: %s (ID: %s)\n", saved.Name, saved.ID)
	return nil
}

type ExerciseEditCmd struct {
	ID     string    `arg:"" help:"Exercise ID or name."`
	Name   *string   `help:"New name."`
	Sets   *string   `help:"Target sets."`
	Reps   *string   `help:"Target reps per set."`
	Rest   *string   `help:"Rest between sets in seconds."`
	Weight *string   `help:"Weight value."`
	Unit   *string   `help:"Weight unit (kg or lbs)."`
	Tags   []string  `help:"Replace the tags." sep:","`
}

func (c *ExerciseEditCmd) Run(ctx *Context) error {
	cat := ctx.Catalog()
	existing, err := resolveExercise(cat, c.ID)
	if err != nil {
		return err
	}

	form := validation.FormFromExercise(existing)
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&form.Name, c.Name)
	set(&form.TargetSets, c.Sets)
	set(&form.TargetReps, c.Reps)
	set(&form.TargetRestTime, c.Rest)
	set(&form.WeightValue, c.Weight)
	set(&form.WeightUnit, c.Unit)

	e, result := validation.New().ParseExerciseForm(form)
	if result.HasConflicts() {
		return result.Err()
	}
	e.ID = existing.ID
	e.Tags = existing.Tags
	if c.Tags != nil {
		e.Tags = c.Tags
	}

	if err := cat.Update(e); err != nil {
		return err
	}
	fmt.Printf("Updated exercise: %s\n", e.Name)
	return nil
}

type ExerciseDeleteCmd struct {
	ID  string `arg:"" help:"Exercise ID or name."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ExerciseDeleteCmd) Run(ctx *Context) error {
	cat := ctx.Catalog()
	e, err := resolveExercise(cat, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete %s?", e.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := cat.Delete(e.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted exercise: %s\n", e.Name)
	return nil
}

type ExerciseListCmd struct {
	Search   string   `help:"Only exercises whose name contains this text."`
	Tags     []string `name:"tag" help:"Only exercises with any of these tags." sep:","`
	Selected bool     `help:"Show the workout selection in play order."`
}

func (c *ExerciseListCmd) Run(ctx *Context) error {
	cat := ctx.Catalog()

	var exercises []models.ExerciseDetails
	var err error
	if c.Selected {
		exercises, err = cat.Selected()
	} else {
		exercises, err = cat.Filter(c.Search, c.Tags)
	}
	if err != nil {
		return err
	}

	if len(exercises) == 0 {
		fmt.Println("No exercises found")
		return nil
	}

	fmt.Println("Exercises:")
	for _, e := range exercises {
		mark := "   "
		if order, ok := e.Order(); ok && e.Selected {
			mark = fmt.Sprintf("%2d.", order)
		}
		fmt.Printf("  %s %s  %d x %d, %ds rest, %s  [%s]\n",
			mark, e.Name, e.TargetSets, e.TargetReps, e.TargetRestTime, formatWeight(e.Weight), shortID(e.ID))
		if len(e.Tags) > 0 {
			fmt.Printf("      tags: %s\n", strings.Join(e.Tags, ", "))
		}
	}
	return nil
}

type ExerciseSelectCmd struct {
	IDs    []string `arg:"" optional:"" help:"Exercise IDs or names, toggled in the given order."`
	All    bool     `help:"Select every exercise matching --search."`
	Search string   `help:"Name filter for --all."`
}

func (c *ExerciseSelectCmd) Run(ctx *Context) error {
	cat := ctx.Catalog()

	if c.All {
		n, err := cat.SelectAll(catalog.Filter{Search: c.Search})
		if err != nil {
			return err
		}
		fmt.Printf("Selected %d exercise(s)\n", n)
		return nil
	}
	if len(c.IDs) == 0 {
		return errors.New("name at least one exercise or pass --all")
	}

	for _, ref := range c.IDs {
		e, err := resolveExercise(cat, ref)
		if err != nil {
			return err
		}
		toggled, err := cat.ToggleSelection(e.ID)
		if err != nil {
			return err
		}
		if order, ok := toggled.Order(); ok && toggled.Selected {
			fmt.Printf("Selected %s as #%d\n", toggled.Name, order)
		} else {
			fmt.Printf("Deselected %s\n", toggled.Name)
		}
	}
	return nil
}

type ExerciseClearCmd struct{}

func (c *ExerciseClearCmd) Run(ctx *Context) error {
	if err := ctx.Catalog().ClearSelection(); err != nil {
		return err
	}
	fmt.Println("Selection cleared")
	return nil
}

type TagListCmd struct{}

func (c *TagListCmd) Run(ctx *Context) error {
	tags, err := ctx.Catalog().Tags()
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}
	for _, t := range tags {
		fmt.Printf("  #%s\n", t)
	}
	return nil
}

type TagAddCmd struct {
	Tag string `arg:"" help:"Tag to add."`
}

func (c *TagAddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Tag) == "" {
		return errors.New("tag cannot be blank")
	}
	if err := ctx.Catalog().AddTag(c.Tag); err != nil {
		return err
	}
	fmt.Printf("Added tag: %s\n", strings.TrimSpace(c.Tag))
	return nil
}

type TagRemoveCmd struct {
	Tag string `arg:"" help:"Tag to remove from the tag list. Exercises keep it."`
}

func (c *TagRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Catalog().RemoveTag(c.Tag); err != nil {
		return err
	}
	fmt.Printf("Removed tag: %s\n", c.Tag)
	return nil
}
