package services

import (
	"sort"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
)

var severityWeights = map[models.ReportType]float64{
	models.ReportTypeHarassment:    2.0,
	models.ReportTypeCopyright:     1.5,
	models.ReportTypeInappropriate: 1.5,
	models.ReportTypeFake:          1.2,
	models.ReportTypeMisleading:    1.0,
	models.ReportTypeSpam:          0.8,
	models.ReportTypeOther:         0.5,
}

const (
	defaultSeverityWeight = 1.0

	UserScoreThreshold   = 12.0
	RecipeScoreThreshold = 6.0
)

// ReportGroupScoreCalculator turns a report-type histogram into a weighted
// score and a priority tier. Stateless.
type ReportGroupScoreCalculator struct{}

func NewReportGroupScoreCalculator() *ReportGroupScoreCalculator {
	return &ReportGroupScoreCalculator{}
}

func SeverityWeight(t models.ReportType) float64 {
	if w, ok := severityWeights[t]; ok {
		return w
	}
	return defaultSeverityWeight
}

func (c *ReportGroupScoreCalculator) WeightedScore(breakdown map[models.ReportType]int) float64 {
	score := 0.0
	for t, count := range breakdown {
		score += float64(count) * SeverityWeight(t)
	}
	return score
}

// MostSevereType returns the type with the largest count*weight. Ties go to
// the type seen first, declared types before unknown ones.
func (c *ReportGroupScoreCalculator) MostSevereType(breakdown map[models.ReportType]int) models.ReportType {
	if len(breakdown) == 0 {
		return models.ReportTypeOther
	}

	var (
		best      models.ReportType
		bestScore float64
		found     bool
	)
	for _, t := range orderedTypes(breakdown) {
		s := float64(breakdown[t]) * SeverityWeight(t)
		if !found || s > bestScore {
			best, bestScore, found = t, s, true
		}
	}
	return best
}

func orderedTypes(breakdown map[models.ReportType]int) []models.ReportType {
	ordered := make([]models.ReportType, 0, len(breakdown))
	known := make(map[models.ReportType]bool, len(models.ReportTypes))
	for _, t := range models.ReportTypes {
		known[t] = true
		if _, ok := breakdown[t]; ok {
			ordered = append(ordered, t)
		}
	}
	var extra []models.ReportType
	for t := range breakdown {
		if !known[t] {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(ordered, extra...)
}

func ScoreThreshold(targetType models.TargetType) float64 {
	if targetType == models.TargetTypeUser {
		return UserScoreThreshold
	}
	return RecipeScoreThreshold
}

func (c *ReportGroupScoreCalculator) Priority(score float64, targetType models.TargetType, count int) models.ReportPriority {
	ratio := score / ScoreThreshold(targetType)
	switch {
	case ratio >= 1.5 || count >= 10:
		return models.PriorityCritical
	case ratio >= 1.0 || count >= 5:
		return models.PriorityHigh
	case ratio >= 0.7 || count >= 3:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// PriorityOrder is a sort key; higher is more urgent.
func PriorityOrder(p models.ReportPriority) int {
	switch p {
	case models.PriorityCritical:
		return 4
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	case models.PriorityLow:
		return 1
	default:
		return 0
	}
}
