package transfer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/gymsimple/internal/models"
)

// The import records mirror the exported JSON. Pointer fields tell a missing
// key apart from a zero value so every required field can be reported.

type weightRecord struct {
	Value *string `json:"value"`
	Unit  *string `json:"unit"`
}

type exerciseRecord struct {
	ID             *string       `json:"id"`
	Name           *string       `json:"name"`
	TargetSets     *string       `json:"targetSets"`
	TargetReps     *string       `json:"targetReps"`
	TargetRestTime *string       `json:"targetRestTime"`
	Weight         *weightRecord `json:"weight"`
	Selected       *bool         `json:"selected"`
	SelectionOrder *int          `json:"selectionOrder,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
}

// Numbers inside session records may be written as 15 or 15.0
type setRecord struct {
	TargetReps *float64 `json:"targetReps"`
	ActualReps *float64 `json:"actualReps"`
}

type exerciseDataRecord struct {
	ID       *string       `json:"id"`
	Name     *string       `json:"name"`
	Weight   *weightRecord `json:"weight"`
	Set      *[]setRecord  `json:"set"`
	RestTime *float64      `json:"restTime"`
	Rating   *float64      `json:"rating"`
}

type sessionRecord struct {
	ID        *string               `json:"id"`
	Date      *string               `json:"date"`
	Exercises *[]exerciseDataRecord `json:"exercises"`
	EndDate   *string               `json:"endDate"`
}

// problems collects field errors for one record
type problems struct {
	prefix string
	errs   []error
}

func (p *problems) add(field, format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf("%s.%s: %s", p.prefix, field, fmt.Sprintf(format, args...)))
}

func (p *problems) required(field string, present bool) bool {
	if !present {
		p.add(field, "is required")
	}
	return present
}

func decodeRecord(raw json.RawMessage, out any, p *problems) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", p.prefix, err))
		return false
	}
	return true
}

func (p *problems) wholeNumber(field string, raw *string) int {
	if !p.required(field, raw != nil) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		p.add(field, "must be a whole number in a string, got %q", *raw)
		return 0
	}
	return n
}

// integer accepts any JSON number with no fractional part
func (p *problems) integer(field string, raw *float64) int {
	if !p.required(field, raw != nil) {
		return 0
	}
	if *raw != math.Trunc(*raw) {
		p.add(field, "must be a whole number, got %v", *raw)
		return 0
	}
	return int(*raw)
}

func (p *problems) weight(field string, w *weightRecord) models.Weight {
	if !p.required(field, w != nil) {
		return models.Weight{}
	}
	var out models.Weight
	if p.required(field+".value", w.Value != nil) {
		if v := strings.TrimSpace(*w.Value); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				p.add(field+".value", "must be a number in a string, got %q", *w.Value)
			}
			out.Value = f
		}
	}
	if p.required(field+".unit", w.Unit != nil) {
		out.Unit = models.WeightUnit(*w.Unit)
		if !out.Unit.Valid() {
			p.add(field+".unit", "must be kg or lbs, got %q", *w.Unit)
		}
	}
	return out
}

func (p *problems) date(field string, raw *string) time.Time {
	if !p.required(field, raw != nil) {
		return time.Time{}
	}
	t, err := parseDate(*raw)
	if err != nil {
		p.add(field, "invalid date %q", *raw)
	}
	return t
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func (r exerciseRecord) toModel(p *problems) models.ExerciseDetails {
	var e models.ExerciseDetails
	if p.required("id", r.ID != nil) {
		e.ID = *r.ID
	}
	if p.required("name", r.Name != nil) {
		e.Name = *r.Name
	}
	e.TargetSets = p.wholeNumber("targetSets", r.TargetSets)
	e.TargetReps = p.wholeNumber("targetReps", r.TargetReps)
	e.TargetRestTime = p.wholeNumber("targetRestTime", r.TargetRestTime)
	e.Weight = p.weight("weight", r.Weight)
	if p.required("selected", r.Selected != nil) {
		e.Selected = *r.Selected
	}
	e.SelectionOrder = r.SelectionOrder
	e.Tags = r.Tags
	return e
}

func (r sessionRecord) toModel(p *problems) models.WorkoutSession {
	var s models.WorkoutSession
	if p.required("id", r.ID != nil) {
		s.ID = *r.ID
	}
	s.Date = p.date("date", r.Date)
	s.EndDate = p.date("endDate", r.EndDate)
	if !p.required("exercises", r.Exercises != nil) {
		return s
	}

	s.Exercises = make([]models.ExerciseData, 0, len(*r.Exercises))
	for i, rec := range *r.Exercises {
		field := fmt.Sprintf("exercises[%d]", i)
		var d models.ExerciseData
		if p.required(field+".id", rec.ID != nil) {
			d.ID = *rec.ID
		}
		if p.required(field+".name", rec.Name != nil) {
			d.Name = *rec.Name
		}
		d.Weight = p.weight(field+".weight", rec.Weight)
		d.RestTime = p.integer(field+".restTime", rec.RestTime)
		d.Rating = p.integer(field+".rating", rec.Rating)
		if p.required(field+".set", rec.Set != nil) {
			d.Sets = make([]models.Set, 0, len(*rec.Set))
			for j, sr := range *rec.Set {
				setField := fmt.Sprintf("%s.set[%d]", field, j)
				d.Sets = append(d.Sets, models.Set{
					TargetReps: p.integer(setField+".targetReps", sr.TargetReps),
					ActualReps: p.integer(setField+".actualReps", sr.ActualReps),
				})
			}
		}
		s.Exercises = append(s.Exercises, d)
	}
	return s
}
