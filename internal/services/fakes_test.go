package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memReports is an in-memory ReportStore. Reports come back in insertion
// order.
type memReports struct {
	mu      sync.Mutex
	order   []uuid.UUID
	byID    map[uuid.UUID]models.Report
	saveAll [][]models.Report
	err     error
}

func newMemReports(reports ...models.Report) *memReports {
	m := &memReports{byID: make(map[uuid.UUID]models.Report)}
	for _, r := range reports {
		m.put(r)
	}
	return m
}

func (m *memReports) put(r models.Report) {
	if _, ok := m.byID[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.byID[r.ID] = r
}

func (m *memReports) all() []models.Report {
	out := make([]models.Report, 0, len(m.order))
	for _, id := range m.order {
		if r, ok := m.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (m *memReports) get(id uuid.UUID) models.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

func (m *memReports) Create(_ context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.put(*r)
	return nil
}

func (m *memReports) Save(_ context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.put(*r)
	return nil
}

func (m *memReports) SaveAll(_ context.Context, reports []models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saveAll = append(m.saveAll, append([]models.Report(nil), reports...))
	for _, r := range reports {
		m.put(r)
	}
	return nil
}

func (m *memReports) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memReports) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *memReports) filter(keep func(r models.Report) bool) []models.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Report
	for _, r := range m.all() {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memReports) FindAllByRecipeID(_ context.Context, recipeID uuid.UUID) ([]models.Report, error) {
	return m.filter(func(r models.Report) bool { return r.RecipeID != nil && *r.RecipeID == recipeID }), nil
}

func (m *memReports) FindAllByReportedID(_ context.Context, userID uuid.UUID) ([]models.Report, error) {
	return m.filter(func(r models.Report) bool { return r.ReportedID != nil && *r.ReportedID == userID }), nil
}

func (m *memReports) CountPendingByReportedID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	rs := m.filter(func(r models.Report) bool {
		return r.IsPending() && r.ReportedID != nil && *r.ReportedID == userID
	})
	return int64(len(rs)), nil
}

func (m *memReports) CountPendingByRecipeID(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	rs := m.filter(func(r models.Report) bool {
		return r.IsPending() && r.RecipeID != nil && *r.RecipeID == recipeID
	})
	return int64(len(rs)), nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memReports) ExistsPendingByReporter(_ context.Context, reporterID uuid.UUID, reportedID, recipeID *uuid.UUID) (bool, error) {
	rs := m.filter(func(r models.Report) bool {
		return r.IsPending() && r.ReporterID == reporterID && sameID(r.ReportedID, reportedID) && sameID(r.RecipeID, recipeID)
	})
	return len(rs) > 0, nil
}

func matches(r models.Report, f dto.ReportFilter) bool {
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.ReportType != nil && r.ReportType != *f.ReportType {
		return false
	}
	if f.ActionType != nil && (r.ActionTaken == nil || *r.ActionTaken != *f.ActionType) {
		return false
	}
	if f.ReporterID != nil && r.ReporterID != *f.ReporterID {
		return false
	}
	return true
}

func (m *memReports) List(ctx context.Context, f dto.ReportFilter) ([]models.Report, int64, error) {
	rs, _ := m.FindMatching(ctx, f)
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	total := int64(len(rs))
	start := f.Page.Offset()
	if start > len(rs) {
		start = len(rs)
	}
	end := start + f.Page.Size
	if end > len(rs) {
		end = len(rs)
	}
	return rs[start:end], total, nil
}

func (m *memReports) FindMatching(_ context.Context, f dto.ReportFilter) ([]models.Report, error) {
	return m.filter(func(r models.Report) bool { return matches(r, f) }), nil
}

func (m *memReports) CountByStatus(context.Context) (map[models.ReportStatus]int64, error) {
	out := map[models.ReportStatus]int64{}
	for _, r := range m.filter(func(models.Report) bool { return true }) {
		out[r.Status]++
	}
	return out, nil
}

func (m *memReports) CountByType(context.Context) (map[models.ReportType]int64, error) {
	out := map[models.ReportType]int64{}
	for _, r := range m.filter(func(models.Report) bool { return true }) {
		out[r.ReportType]++
	}
	return out, nil
}

func (m *memReports) CountReviewedSince(_ context.Context, since time.Time) (int64, error) {
	rs := m.filter(func(r models.Report) bool { return r.ReviewedAt != nil && !r.ReviewedAt.Before(since) })
	return int64(len(rs)), nil
}

// memUsers is an in-memory UserStore that records enforcement calls.
type memUsers struct {
	mu        sync.Mutex
	names     map[uuid.UUID]string
	suspended map[uuid.UUID]int
	disabled  map[uuid.UUID]int
	err       error
}

func newMemUsers(names map[uuid.UUID]string) *memUsers {
	if names == nil {
		names = map[uuid.UUID]string{}
	}
	return &memUsers{names: names, suspended: map[uuid.UUID]int{}, disabled: map[uuid.UUID]int{}}
}

func (u *memUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := u.names[id]
	return ok, nil
}

func (u *memUsers) SuspendUser(_ context.Context, id uuid.UUID, days int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	if _, ok := u.names[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	u.suspended[id] = days
	return nil
}

func (u *memUsers) DisableUser(_ context.Context, id uuid.UUID) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	if _, ok := u.names[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	u.disabled[id]++
	return nil
}

func (u *memUsers) FindUsernameByID(_ context.Context, id uuid.UUID) (string, error) {
	name, ok := u.names[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return name, nil
}

func (u *memUsers) FindUsernamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if name, ok := u.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

// memRecipes is an in-memory RecipeStore.
type memRecipes struct {
	mu          sync.Mutex
	titles      map[uuid.UUID]string
	unpublished map[uuid.UUID]int
}

func newMemRecipes(titles map[uuid.UUID]string) *memRecipes {
	if titles == nil {
		titles = map[uuid.UUID]string{}
	}
	return &memRecipes{titles: titles, unpublished: map[uuid.UUID]int{}}
}

func (r *memRecipes) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.titles[id]
	return ok, nil
}

func (r *memRecipes) UnpublishRecipe(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.titles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.unpublished[id]++
	return nil
}

func (r *memRecipes) FindRecipeTitleByID(_ context.Context, id uuid.UUID) (string, error) {
	title, ok := r.titles[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return title, nil
}

func (r *memRecipes) FindRecipeTitlesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if title, ok := r.titles[id]; ok {
			out[id] = title
		}
	}
	return out, nil
}

// memNotifications is an in-memory NotificationStore.
type memNotifications struct {
	mu    sync.Mutex
	items []models.Notification
}

func (n *memNotifications) Create(_ context.Context, item *models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, *item)
	return nil
}

func (n *memNotifications) ListByRecipient(_ context.Context, recipientID uuid.UUID, page dto.PageRequest) ([]models.Notification, int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Notification
	for _, item := range n.items {
		if item.RecipientID == recipientID {
			out = append(out, item)
		}
	}
	return out, int64(len(out)), nil
}

func (n *memNotifications) CountUnread(_ context.Context, recipientID uuid.UUID) (int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var count int64
	for _, item := range n.items {
		if item.RecipientID == recipientID && !item.IsRead {
			count++
		}
	}
	return count, nil
}

func (n *memNotifications) MarkRead(_ context.Context, recipientID, id uuid.UUID, at time.Time) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id && n.items[i].RecipientID == recipientID {
			n.items[i].IsRead = true
			n.items[i].ReadAt = &at
			return true, nil
		}
	}
	return false, nil
}

// recordingNotifier captures deliveries and can fail or panic for chosen
// reporters.
type recordingNotifier struct {
	mu        sync.Mutex
	delivered []uuid.UUID
	failFor   map[uuid.UUID]error
	panicFor  map[uuid.UUID]bool
}

func (r *recordingNotifier) NotifyReporterReviewComplete(_ context.Context, _ *models.Report, _ string, reporterID uuid.UUID) error {
	if r.panicFor[reporterID] {
		panic("notifier exploded")
	}
	if err := r.failFor[reporterID]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, reporterID)
	return nil
}

// inlineSubmitter runs every task on the caller.
type inlineSubmitter struct{ submitted int }

func (s *inlineSubmitter) Submit(task func()) {
	s.submitted++
	task()
}

func ptr[T any](v T) *T { return &v }

func pendingReport(reporter uuid.UUID, reported, recipe *uuid.UUID, t models.ReportType, createdAt time.Time) models.Report {
	return models.Report{
		ID:         uuid.New(),
		ReporterID: reporter,
		ReportedID: reported,
		RecipeID:   recipe,
		ReportType: t,
		Reason:     "reason",
		Status:     models.ReportStatusPending,
		CreatedAt:  createdAt,
	}
}

// memTx restores the report store when fn fails, the way a rolled back
// transaction would.
type memTx struct {
	reports *memReports
	calls   int
}

func (t *memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	t.reports.mu.Lock()
	order := append([]uuid.UUID(nil), t.reports.order...)
	byID := make(map[uuid.UUID]models.Report, len(t.reports.byID))
	for id, r := range t.reports.byID {
		byID[id] = r
	}
	t.reports.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.reports.mu.Lock()
		t.reports.order, t.reports.byID = order, byID
		t.reports.mu.Unlock()
		return err
	}
	return nil
}
