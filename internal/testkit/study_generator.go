package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"stailab/domain/core"
	"stailab/domain/study"
)

// StudyGeneratorConfig configures the synthetic judgment sheet generator
type StudyGeneratorConfig struct {
	Participants int     `json:"participants"`
	BaselineMean float64 `json:"baseline_mean"` // condition A STAI-S mean
	BaselineSD   float64 `json:"baseline_sd"`
	NoiseSD      float64 `json:"noise_sd"` // spread of delta within a group
	// Shifts is the mean delta per category, applied through the first dimension.
	Shifts       map[study.Category]float64 `json:"-"`
	SentinelRate float64                    `json:"sentinel_rate"`
	MissingRate  float64                    `json:"missing_rate"` // rows without a B score
	Seed         int64                      `json:"seed"`
}

// DefaultStudyConfig returns a small study with a clear effect on Element 1
func DefaultStudyConfig() StudyGeneratorConfig {
	return StudyGeneratorConfig{
		Participants: 30,
		BaselineMean: 42,
		BaselineSD:   6,
		NoiseSD:      2,
		Shifts: map[study.Category]float64{
			study.ValidCoping:       -5,
			study.NoEffect:          0,
			study.Counterproductive: 4,
		},
		SentinelRate: 0.1,
		Seed:         42,
	}
}

// STAI-S totals are sums of 20 items scored 1..4
const (
	minScore = 20
	maxScore = 80
)

// StudyDataGenerator produces reproducible participant tables
type StudyDataGenerator struct {
	config StudyGeneratorConfig
	dims   []study.Dimension
	rng    *rand.Rand
}

// NewStudyDataGenerator creates a generator over the default element columns
func NewStudyDataGenerator(config StudyGeneratorConfig) *StudyDataGenerator {
	return &StudyDataGenerator{
		config: config,
		dims:   study.DefaultDimensions,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateDataset builds a typed dataset. Rows marked missing are counted in
// DroppedRows only, the same way the reader treats them.
func (g *StudyDataGenerator) GenerateDataset() *study.Dataset {
	ds := &study.Dataset{
		Source:      fmt.Sprintf("synthetic(seed=%d)", g.config.Seed),
		Fingerprint: core.NewHash([]byte(fmt.Sprintf("synthetic:%d:%d", g.config.Seed, g.config.Participants))),
		Dimensions:  g.dims,
	}
	for _, row := range g.rows() {
		if row.missing {
			ds.DroppedRows++
			continue
		}
		ds.Observations = append(ds.Observations, study.NewObservation(row.participant, row.a, row.b, row.labels))
	}
	return ds
}

// WriteCSV writes the judgment sheet layout the reader accepts, with labels
// in their sheet spelling and empty B cells for missing rows.
func (g *StudyDataGenerator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"ID", "A_Score", "B_Score"}
	for _, d := range g.dims {
		header = append(header, d.Column)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range g.rows() {
		record := []string{row.participant, formatScore(row.a), ""}
		if !row.missing {
			record[2] = formatScore(row.b)
		}
		for _, d := range g.dims {
			record = append(record, row.labels[d.Column].Label())
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type generatedRow struct {
	participant string
	a, b        float64
	labels      map[string]study.Category
	missing     bool
}

// rows resets the source so every call sees the same sequence.
func (g *StudyDataGenerator) rows() []generatedRow {
	g.rng.Seed(g.config.Seed)
	out := make([]generatedRow, 0, g.config.Participants)
	for i := 0; i < g.config.Participants; i++ {
		labels := make(map[string]study.Category, len(g.dims))
		for _, d := range g.dims {
			labels[d.Column] = g.randomCategory()
		}

		a := clampScore(g.config.BaselineMean + g.rng.NormFloat64()*g.config.BaselineSD)
		shift := g.config.Shifts[labels[g.dims[0].Column]]
		b := clampScore(a + shift + g.rng.NormFloat64()*g.config.NoiseSD)

		out = append(out, generatedRow{
			participant: fmt.Sprintf("P%02d", i+1),
			a:           a,
			b:           b,
			labels:      labels,
			missing:     g.rng.Float64() < g.config.MissingRate,
		})
	}
	return out
}

func (g *StudyDataGenerator) randomCategory() study.Category {
	if g.rng.Float64() < g.config.SentinelRate {
		return study.InsufficientData
	}
	return study.CanonicalOrder[g.rng.Intn(len(study.CanonicalOrder))]
}

func clampScore(v float64) float64 {
	return math.Max(minScore, math.Min(maxScore, math.Round(v)))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
