package scoring

import (
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// DoorDistributionMetric scores how doors spread across rooms: the mean
// doors-per-room should land in a comfortable band, and a very uneven
// distribution (a few rooms holding most doors) takes an extra penalty
// proportional to the coefficient of variation above 1.
type DoorDistributionMetric struct {
	MeanLo        float64 // lower edge of the target doors-per-room band
	MeanHi        float64 // upper edge of the target doors-per-room band
	SpreadPenalty float64 // penalty per unit of CV above 1
}

func (m *DoorDistributionMetric) Key() string        { return "door_distribution" }
func (m *DoorDistributionMetric) Name() string       { return "Door distribution" }
func (m *DoorDistributionMetric) Category() Category { return CategoryGameplay }

func (m *DoorDistributionMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	n := g.NodeCount()
	if n == 0 {
		return errResult(m, "level has no rooms")
	}

	degrees := make([]float64, 0, n)
	for _, id := range g.Nodes() {
		degrees = append(degrees, float64(g.Degree(id)))
	}

	meanDoors := mean(degrees)
	cv := coeffVariation(degrees)

	score := PlateauScore(meanDoors, m.MeanLo, m.MeanHi,
		Falloff{Width: m.MeanLo, Floor: 0},
		Falloff{Width: m.MeanHi, Floor: 0},
	)
	if cv > 1 {
		score = clamp01(score - m.SpreadPenalty*(cv-1))
	}

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"mean_doors_per_room": meanDoors,
			"coeff_variation":     cv,
			"connection_count":    g.EdgeCount(),
		},
	}
}
