// Package sessions stores finished workout sessions.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
)

var ErrNotFound = errors.New("session not found")

// Store is the session history under the workout-sessions key
type Store struct {
	store storage.Provider
}

func New(store storage.Provider) *Store {
	return &Store{store: store}
}

// Append adds a finished session with a single read-modify-write
func (s *Store) Append(ctx context.Context, session models.WorkoutSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sessions, err := storage.GetSessions(s.store)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if err := storage.SaveSessions(s.store, append(sessions, session)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	logger.Info("Workout session saved", "id", session.ID, "exercises", len(session.Exercises))
	return nil
}

// List returns every session, newest first
func (s *Store) List() ([]models.WorkoutSession, error) {
	sessions, err := storage.GetSessions(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	SortByDateDesc(sessions)
	return sessions, nil
}

func (s *Store) Get(id string) (models.WorkoutSession, error) {
	sessions, err := storage.GetSessions(s.store)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	i := slices.IndexFunc(sessions, func(ws models.WorkoutSession) bool { return ws.ID == id })
	if i < 0 {
		return models.WorkoutSession{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sessions[i], nil
}

// Delete removes a whole session record
func (s *Store) Delete(id string) error {
	sessions, err := storage.GetSessions(s.store)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	i := slices.IndexFunc(sessions, func(ws models.WorkoutSession) bool { return ws.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := storage.SaveSessions(s.store, slices.Delete(sessions, i, i+1)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SortByDateDesc orders sessions newest first, keeping the relative order of equal dates
func SortByDateDesc(sessions []models.WorkoutSession) {
	slices.SortStableFunc(sessions, func(a, b models.WorkoutSession) int {
		return b.Date.Compare(a.Date)
	})
}
