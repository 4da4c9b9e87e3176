package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/gymsimple/internal/storage"
)

// Tags returns the known tags, sorted
func (c *Catalog) Tags() ([]string, error) {
	tags, err := storage.GetTags(c.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	return tags, nil
}

// AddTag adds a trimmed tag to the tag set. Blank and known tags are ignored.
func (c *Catalog) AddTag(tag string) error {
	return c.mergeTags([]string{tag})
}

// RemoveTag drops tag from the tag set. Exercises keep the tag on their own entries.
func (c *Catalog) RemoveTag(tag string) error {
	tags, err := c.Tags()
	if err != nil {
		return err
	}
	i := slices.Index(tags, tag)
	if i < 0 {
		return nil
	}
	if err := storage.SaveTags(c.store, slices.Delete(tags, i, i+1)); err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}
	return nil
}

// MergeTags adds every tag in incoming to the tag set in a single write
func (c *Catalog) MergeTags(incoming []string) error {
	return c.mergeTags(incoming)
}

func (c *Catalog) mergeTags(incoming []string) error {
	incoming = normalizeTags(incoming)
	if len(incoming) == 0 {
		return nil
	}

	tags, err := c.Tags()
	if err != nil {
		return err
	}
	changed := false
	for _, t := range incoming {
		if !slices.Contains(tags, t) {
			tags = append(tags, t)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	slices.Sort(tags)
	if err := storage.SaveTags(c.store, tags); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}
	return nil
}

// normalizeTags trims, drops blanks and de-duplicates while keeping first-seen order
func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
