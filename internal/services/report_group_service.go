package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
)

const topReporterLimit = 3

// ReportGroupService builds the admin queue: reports grouped by target and
// ordered by urgency.
type ReportGroupService struct {
	reports ReportStore
	users   UserStore
	recipes RecipeStore
	calc    *ReportGroupScoreCalculator
}

func NewReportGroupService(reports ReportStore, users UserStore, recipes RecipeStore, calc *ReportGroupScoreCalculator) *ReportGroupService {
	return &ReportGroupService{reports: reports, users: users, recipes: recipes, calc: calc}
}

type groupKey struct {
	targetType models.TargetType
	targetID   uuid.UUID
}

// ListGroups returns one page of groups sorted by priority, then report
// count, then most recent report.
func (s *ReportGroupService) ListGroups(ctx context.Context, filter dto.ReportFilter) (*dto.ReportGroupPage, error) {
	filter.Page.Normalize()

	reports, err := s.reports.FindMatching(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for grouping: %w", err)
	}

	byTarget := make(map[groupKey][]models.Report)
	for _, r := range reports {
		targetType, targetID, ok := r.GroupTarget()
		if !ok {
			continue
		}
		k := groupKey{targetType: targetType, targetID: targetID}
		byTarget[k] = append(byTarget[k], r)
	}

	groups := make([]dto.ReportGroup, 0, len(byTarget))
	for k, rs := range byTarget {
		groups = append(groups, s.buildGroup(k, rs))
	}
	SortReportGroups(groups)

	total := len(groups)
	start := filter.Page.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := start + filter.Page.Size
	if end > total {
		end = total
	}
	pageGroups := groups[start:end]

	if err := s.attachNames(ctx, pageGroups); err != nil {
		return nil, err
	}

	return &dto.ReportGroupPage{Groups: pageGroups, Total: total, Page: filter.Page.Page, Size: filter.Page.Size}, nil
}

// GetGroup returns one target's group along with its reports, newest first.
func (s *ReportGroupService) GetGroup(ctx context.Context, targetType models.TargetType, targetID uuid.UUID) (*dto.ReportGroupDetail, error) {
	var (
		reports []models.Report
		err     error
	)
	switch targetType {
	case models.TargetTypeRecipe:
		reports, err = s.reports.FindAllByRecipeID(ctx, targetID)
	case models.TargetTypeUser:
		reports, err = s.reports.FindAllByReportedID(ctx, targetID)
	default:
		return nil, ErrInvalidTargetType
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report group: %w", err)
	}

	members := reports[:0]
	for _, r := range reports {
		if t, id, ok := r.GroupTarget(); ok && t == targetType && id == targetID {
			members = append(members, r)
		}
	}
	if len(members) == 0 {
		return nil, ErrReportGroupNotFound
	}

	group := s.buildGroup(groupKey{targetType: targetType, targetID: targetID}, members)
	groups := []dto.ReportGroup{group}
	if err := s.attachNames(ctx, groups); err != nil {
		return nil, err
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})
	return &dto.ReportGroupDetail{ReportGroup: groups[0], Reports: members}, nil
}

func (s *ReportGroupService) buildGroup(k groupKey, reports []models.Report) dto.ReportGroup {
	g := dto.ReportGroup{
		TargetType:    k.targetType,
		TargetID:      k.targetID,
		ReportCount:   len(reports),
		TypeBreakdown: make(map[models.ReportType]int),
	}

	perReporter := make(map[uuid.UUID]int)
	for _, r := range reports {
		g.TypeBreakdown[r.ReportType]++
		perReporter[r.ReporterID]++
		if r.IsPending() {
			g.PendingCount++
		}
		if r.CreatedAt.After(g.LatestReportAt) {
			g.LatestReportAt = r.CreatedAt
		}
	}

	g.WeightedScore = s.calc.WeightedScore(g.TypeBreakdown)
	g.Priority = s.calc.Priority(g.WeightedScore, k.targetType, g.ReportCount)
	g.MostSevereType = s.calc.MostSevereType(g.TypeBreakdown)
	g.TopReporters = topReporters(perReporter, topReporterLimit)
	return g
}

func topReporters(perReporter map[uuid.UUID]int, limit int) []dto.TopReporter {
	top := make([]dto.TopReporter, 0, len(perReporter))
	for id, n := range perReporter {
		top = append(top, dto.TopReporter{ReporterID: id, ReportCount: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].ReportCount != top[j].ReportCount {
			return top[i].ReportCount > top[j].ReportCount
		}
		return top[i].ReporterID.String() < top[j].ReporterID.String()
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// SortReportGroups orders groups most urgent first.
func SortReportGroups(groups []dto.ReportGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if pa, pb := PriorityOrder(a.Priority), PriorityOrder(b.Priority); pa != pb {
			return pa > pb
		}
		if a.ReportCount != b.ReportCount {
			return a.ReportCount > b.ReportCount
		}
		if !a.LatestReportAt.Equal(b.LatestReportAt) {
			return a.LatestReportAt.After(b.LatestReportAt)
		}
		return a.TargetID.String() < b.TargetID.String()
	})
}

func (s *ReportGroupService) attachNames(ctx context.Context, groups []dto.ReportGroup) error {
	if len(groups) == 0 {
		return nil
	}

	var userIDs, recipeIDs []uuid.UUID
	for _, g := range groups {
		if g.TargetType == models.TargetTypeUser {
			userIDs = append(userIDs, g.TargetID)
		} else {
			recipeIDs = append(recipeIDs, g.TargetID)
		}
		for _, tr := range g.TopReporters {
			userIDs = append(userIDs, tr.ReporterID)
		}
	}

	usernames, err := s.users.FindUsernamesByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve usernames: %w", err)
	}
	titles := map[uuid.UUID]string{}
	if len(recipeIDs) > 0 {
		titles, err = s.recipes.FindRecipeTitlesByIDs(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("failed to resolve recipe titles: %w", err)
		}
	}

	for i := range groups {
		g := &groups[i]
		if g.TargetType == models.TargetTypeUser {
			g.TargetName = usernames[g.TargetID]
		} else {
			g.TargetName = titles[g.TargetID]
		}
		for j := range g.TopReporters {
			g.TopReporters[j].Username = usernames[g.TopReporters[j].ReporterID]
		}
	}
	return nil
}
