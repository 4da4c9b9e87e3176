// Package transfer exports and imports exercises and sessions as JSON files.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/julianstephens/gymsimple/internal/catalog"
	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/sessions"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/validation"
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrCanceled        = errors.New("import canceled")
)

// ImportError rejects a whole import file and carries every record problem
type ImportError struct {
	Kind string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("invalid %s file: %d problem(s)", e.Kind, len(multierr.Errors(e.Err)))
}

func (e *ImportError) Unwrap() error { return e.Err }

// Problems lists each record error
func (e *ImportError) Problems() []error { return multierr.Errors(e.Err) }

// ImportResult reports what an import changed
type ImportResult struct {
	Imported int // records in the file
	Total    int // records stored after merging
}

// Option configures a Service
type Option func(*Service)

// WithBackup runs fn before a validated import is written; a failing backup aborts the import
func WithBackup(fn func() (string, error)) Option {
	return func(s *Service) {
		s.backup = fn
	}
}

type Service struct {
	store     storage.Provider
	catalog   *catalog.Catalog
	validator *validation.Validator
	backup    func() (string, error)
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store:     store,
		catalog:   catalog.New(store),
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportExercises shares every exercise as exercises.json and returns where it went
func (s *Service) ExportExercises(sharer Sharer) (string, error) {
	exercises, err := storage.GetExercises(s.store)
	if err != nil {
		return "", err
	}
	if len(exercises) == 0 {
		return "", fmt.Errorf("%w: no exercises", ErrNothingToExport)
	}
	return share(sharer, constants.ExercisesFileName, exercises)
}

// ExportSessions shares every session as workout-sessions.json and returns where it went
func (s *Service) ExportSessions(sharer Sharer) (string, error) {
	list, err := storage.GetSessions(s.store)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("%w: no workout sessions", ErrNothingToExport)
	}
	return share(sharer, constants.SessionsFileName, list)
}

func share(sharer Sharer, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	location, err := sharer.ShareFile(name, data)
	if err != nil {
		return "", fmt.Errorf("failed to share %s: %w", name, err)
	}
	logger.Info("Exported file", "name", name, "location", location, "bytes", len(data))
	return location, nil
}

// ParseExercises decodes and validates an exercises file without touching storage
func (s *Service) ParseExercises(data []byte) ([]models.ExerciseDetails, error) {
	raws, err := splitArray("exercises", data)
	if err != nil {
		return nil, err
	}

	var all error
	out := make([]models.ExerciseDetails, 0, len(raws))
	for i, raw := range raws {
		p := &problems{prefix: fmt.Sprintf("exercises[%d]", i)}
		var rec exerciseRecord
		if decodeRecord(raw, &rec, p) {
			e := rec.toModel(p)
			if len(p.errs) == 0 {
				for _, c := range s.validator.ValidateExercise(e).Conflicts {
					p.add(c.Field, "%s", c.Description)
				}
			}
			out = append(out, e)
		}
		all = multierr.Append(all, multierr.Combine(p.errs...))
	}
	if all != nil {
		return nil, &ImportError{Kind: "exercises", Err: all}
	}
	return out, nil
}

// ParseSessions decodes and validates a sessions file without touching storage
func (s *Service) ParseSessions(data []byte) ([]models.WorkoutSession, error) {
	raws, err := splitArray("workout sessions", data)
	if err != nil {
		return nil, err
	}

	var all error
	out := make([]models.WorkoutSession, 0, len(raws))
	for i, raw := range raws {
		p := &problems{prefix: fmt.Sprintf("sessions[%d]", i)}
		var rec sessionRecord
		if decodeRecord(raw, &rec, p) {
			ws := rec.toModel(p)
			if len(p.errs) == 0 {
				for _, c := range s.validator.ValidateSession(ws).Conflicts {
					p.add(c.Field, "%s", c.Description)
				}
			}
			out = append(out, ws)
		}
		all = multierr.Append(all, multierr.Combine(p.errs...))
	}
	if all != nil {
		return nil, &ImportError{Kind: "workout sessions", Err: all}
	}
	return out, nil
}

func splitArray(kind string, data []byte) ([]json.RawMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ImportError{Kind: kind, Err: fmt.Errorf("file must contain a JSON array: %w", err)}
	}
	return raws, nil
}

// ImportExercises merges a picked exercises file into the catalog. Imported records
// win on duplicate ids; imported tags join the tag set. Nothing is written when any
// record is invalid.
func (s *Service) ImportExercises(picker Picker) (ImportResult, error) {
	data, err := picker.PickFile()
	if err != nil {
		return ImportResult{}, err
	}
	imported, err := s.ParseExercises(data)
	if err != nil {
		logger.Warn("Import rejected", "kind", "exercises", "error", err)
		return ImportResult{}, err
	}

	existing, err := storage.GetExercises(s.store)
	if err != nil {
		return ImportResult{}, err
	}
	merged := dedupe(append(imported, existing...), func(e models.ExerciseDetails) string { return e.ID })
	catalog.Renumber(merged)

	if err := s.runBackup(); err != nil {
		return ImportResult{}, err
	}
	if err := storage.SaveExercises(s.store, merged); err != nil {
		return ImportResult{}, fmt.Errorf("failed to save imported exercises: %w", err)
	}

	var tags []string
	for _, e := range imported {
		tags = append(tags, e.Tags...)
	}
	if err := s.catalog.MergeTags(tags); err != nil {
		return ImportResult{}, err
	}

	logger.Info("Imported exercises", "imported", len(imported), "total", len(merged))
	return ImportResult{Imported: len(imported), Total: len(merged)}, nil
}

// ImportSessions merges a picked sessions file into the history, newest first.
// Imported records win on duplicate ids. Nothing is written when any record is invalid.
func (s *Service) ImportSessions(picker Picker) (ImportResult, error) {
	data, err := picker.PickFile()
	if err != nil {
		return ImportResult{}, err
	}
	imported, err := s.ParseSessions(data)
	if err != nil {
		logger.Warn("Import rejected", "kind", "workout-sessions", "error", err)
		return ImportResult{}, err
	}

	existing, err := storage.GetSessions(s.store)
	if err != nil {
		return ImportResult{}, err
	}
	merged := dedupe(append(imported, existing...), func(ws models.WorkoutSession) string { return ws.ID })
	sessions.SortByDateDesc(merged)

	if err := s.runBackup(); err != nil {
		return ImportResult{}, err
	}
	if err := storage.SaveSessions(s.store, merged); err != nil {
		return ImportResult{}, fmt.Errorf("failed to save imported sessions: %w", err)
	}

	logger.Info("Imported workout sessions", "imported", len(imported), "total", len(merged))
	return ImportResult{Imported: len(imported), Total: len(merged)}, nil
}

func (s *Service) runBackup() error {
	if s.backup == nil {
		return nil
	}
	path, err := s.backup()
	if err != nil {
		return fmt.Errorf("failed to back up before import: %w", err)
	}
	logger.Debug("Backup taken before import", "path", path)
	return nil
}

// dedupe keeps the first record for each id
func dedupe[T any](records []T, id func(T) string) []T {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		k := id(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
