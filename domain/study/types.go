package study

import (
	"fmt"
	"strings"

	"stailab/domain/core"
)

// Category is one element judgment for a participant.
type Category int

const (
	ValidCoping Category = iota
	NoEffect
	Counterproductive
	// InsufficientData excludes a participant from one dimension without excluding them from others.
	InsufficientData
)

// CanonicalOrder is the fixed group order used for every comparison. The sentinel is not part of it.
var CanonicalOrder = []Category{ValidCoping, NoEffect, Counterproductive}

// AllCategories lists every value including the sentinel, in report order.
var AllCategories = []Category{ValidCoping, NoEffect, Counterproductive, InsufficientData}

var categoryNames = map[Category]string{
	ValidCoping:       "ValidCoping",
	NoEffect:          "NoEffect",
	Counterproductive: "Counterproductive",
	InsufficientData:  "InsufficientData",
}

// study labels as they appear in the judgment sheet
var categoryLabels = map[Category]string{
	ValidCoping:       "有効",
	NoEffect:          "不変",
	Counterproductive: "逆効果",
	InsufficientData:  "データ不足",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Label returns the judgment sheet label.
func (c Category) Label() string {
	return categoryLabels[c]
}

// IsSentinel reports whether c is InsufficientData.
func (c Category) IsSentinel() bool {
	return c == InsufficientData
}

// Score encodes a category for rank correlation: ValidCoping=1, NoEffect=0,
// Counterproductive=-1. The sentinel has no score.
func (c Category) Score() (float64, bool) {
	switch c {
	case ValidCoping:
		return 1, true
	case NoEffect:
		return 0, true
	case Counterproductive:
		return -1, true
	default:
		return 0, false
	}
}

// ParseCategory accepts the judgment sheet labels or the English names (case-insensitive).
func ParseCategory(s string) (Category, error) {
	v := strings.TrimSpace(s)
	for c, label := range categoryLabels {
		if v == label {
			return c, nil
		}
	}
	for c, name := range categoryNames {
		if strings.EqualFold(v, name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q", core.ErrUnknownCategory, s)
}

// Dimension is one categorical judgment column of the study.
type Dimension struct {
	Column string `json:"column"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// DefaultDimensions are the three element columns of the judgment sheet.
var DefaultDimensions = []Dimension{
	{Column: "Element1_Obligation", Name: "Element 1: obligation to continue communicating", Number: 1},
	{Column: "Element2_Burden", Name: "Element 2: interpersonal consideration burden", Number: 2},
	{Column: "Element3_Rejection", Name: "Element 3: rejection and evaluation concern", Number: 3},
}

// Selector returns the label selector for this dimension.
func (d Dimension) Selector() LabelSelector {
	column := d.Column
	return func(o Observation) Category {
		return o.Label(column)
	}
}

// LabelSelector picks one label dimension out of an observation.
type LabelSelector func(Observation) Category

// Observation is one participant. Immutable once loaded.
type Observation struct {
	Participant string              `json:"participant,omitempty"`
	A           float64             `json:"a_score"`
	B           float64             `json:"b_score"`
	Labels      map[string]Category `json:"labels,omitempty"`
}

// NewObservation copies labels so the caller cannot mutate the observation afterwards.
func NewObservation(participant string, a, b float64, labels map[string]Category) Observation {
	copied := make(map[string]Category, len(labels))
	for k, v := range labels {
		copied[k] = v
	}
	return Observation{Participant: participant, A: a, B: b, Labels: copied}
}

// Delta is condition B minus condition A.
func (o Observation) Delta() float64 {
	return o.B - o.A
}

// Label returns the category for column; a missing column counts as the sentinel.
func (o Observation) Label(column string) Category {
	if c, ok := o.Labels[column]; ok {
		return c
	}
	return InsufficientData
}

// Dataset is the loaded participant table.
type Dataset struct {
	Source       string        `json:"source"`
	Fingerprint  core.Hash     `json:"fingerprint"`
	Observations []Observation `json:"observations"`
	Dimensions   []Dimension   `json:"dimensions"`
	DroppedRows  int           `json:"dropped_rows"` // rows without both scores
}

// ScoresA returns condition A scores in participant order.
func (d *Dataset) ScoresA() []float64 {
	out := make([]float64, len(d.Observations))
	for i, o := range d.Observations {
		out[i] = o.A
	}
	return out
}

// ScoresB returns condition B scores in participant order.
func (d *Dataset) ScoresB() []float64 {
	out := make([]float64, len(d.Observations))
	for i, o := range d.Observations {
		out[i] = o.B
	}
	return out
}

// Deltas returns B-A for every participant.
func (d *Dataset) Deltas() []float64 {
	out := make([]float64, len(d.Observations))
	for i, o := range d.Observations {
		out[i] = o.Delta()
	}
	return out
}

// Labels returns the column's category for every participant.
func (d *Dataset) Labels(column string) []Category {
	out := make([]Category, len(d.Observations))
	for i, o := range d.Observations {
		out[i] = o.Label(column)
	}
	return out
}
