package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/gymsimple/internal/backup"
	"github.com/julianstephens/gymsimple/internal/catalog"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/reminders"
	"github.com/julianstephens/gymsimple/internal/scheduler"
	"github.com/julianstephens/gymsimple/internal/sessions"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/transfer"
)

type Context struct {
	Store     storage.Provider
	Scheduler scheduler.Scheduler
	Stdin     io.Reader
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:     store,
		Scheduler: scheduler.New(store),
		Stdin:     os.Stdin,
	}
}

func (c *Context) Catalog() *catalog.Catalog { return catalog.New(c.Store) }

func (c *Context) Sessions() *sessions.Store { return sessions.New(c.Store) }

func (c *Context) Reminders() *reminders.Manager { return reminders.New(c.Scheduler) }

func (c *Context) Backups() *backup.Manager { return backup.NewManager(c.Store.GetConfigPath()) }

// Transfer returns the import/export service; imports back up the data file first
func (c *Context) Transfer() *transfer.Service {
	return transfer.New(c.Store, transfer.WithBackup(c.Backups().CreateBackup))
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// confirm asks a yes/no question on stdin; anything but y/yes declines
func (c *Context) confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(c.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// resolveExercise finds an exercise by id, then by case-insensitive name
func resolveExercise(cat *catalog.Catalog, ref string) (models.ExerciseDetails, error) {
	if e, err := cat.Get(ref); err == nil {
		return e, nil
	}
	exercises, err := cat.List()
	if err != nil {
		return models.ExerciseDetails{}, err
	}
	var match *models.ExerciseDetails
	for i := range exercises {
		if strings.EqualFold(exercises[i].Name, ref) {
			if match != nil {
				return models.ExerciseDetails{}, fmt.Errorf("more than one exercise is named %q, use the id", ref)
			}
			match = &exercises[i]
		}
	}
	if match == nil {
		return models.ExerciseDetails{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, ref)
	}
	return *match, nil
}

// resolveSession finds a session by id, or by a unique id prefix as printed by session list
func resolveSession(store *sessions.Store, ref string) (models.WorkoutSession, error) {
	if s, err := store.Get(ref); err == nil {
		return s, nil
	}
	list, err := store.List()
	if err != nil {
		return models.WorkoutSession{}, err
	}
	var match *models.WorkoutSession
	for i := range list {
		if ref != "" && strings.HasPrefix(list[i].ID, ref) {
			if match != nil {
				return models.WorkoutSession{}, fmt.Errorf("id prefix %q matches more than one workout", ref)
			}
			match = &list[i]
		}
	}
	if match == nil {
		return models.WorkoutSession{}, fmt.Errorf("%w: %s", sessions.ErrNotFound, ref)
	}
	return *match, nil
}

// shortID trims a uuid for table output
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatWeight(w models.Weight) string {
	if w.Value == 0 {
		return "bodyweight"
	}
	return fmt.Sprintf("%g %s", w.Value, w.Unit)
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
