package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/services"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReports struct {
	createErr  error
	created    *dto.CreateReportRequest
	lastFilter dto.ReportFilter
	reviewErr  error
	reviewedBy uuid.UUID
	deleteErr  error
}

func (f *fakeReports) CreateReport(_ context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = req
	return &models.Report{ID: uuid.New(), ReporterID: reporterID, Status: models.ReportStatusPending}, nil
}

func (f *fakeReports) ListMyReports(_ context.Context, reporterID uuid.UUID, page dto.PageRequest) (*dto.ReportPage, error) {
	return &dto.ReportPage{Page: page.Page, Size: page.Size}, nil
}

func (f *fakeReports) GetReport(_ context.Context, id uuid.UUID) (*models.Report, error) {
	return nil, services.ErrReportNotFound
}

func (f *fakeReports) ListReports(_ context.Context, filter dto.ReportFilter) (*dto.ReportPage, error) {
	f.lastFilter = filter
	return &dto.ReportPage{}, nil
}

func (f *fakeReports) ReviewReport(_ context.Context, id, adminID uuid.UUID, req *dto.ReviewReportRequest) (*models.Report, error) {
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	f.reviewedBy = adminID
	return &models.Report{ID: id, Status: models.ReportStatusApproved}, nil
}

func (f *fakeReports) DeleteReport(_ context.Context, id uuid.UUID) error {
	return f.deleteErr
}

func (f *fakeReports) GetStatistics(context.Context) (*dto.ReportStatistics, error) {
	return nil, errors.New("db down")
}

type fakeGroups struct{}

func (fakeGroups) ListGroups(_ context.Context, filter dto.ReportFilter) (*dto.ReportGroupPage, error) {
	return &dto.ReportGroupPage{Page: filter.Page.Page}, nil
}

func (fakeGroups) GetGroup(_ context.Context, targetType models.TargetType, targetID uuid.UUID) (*dto.ReportGroupDetail, error) {
	if targetType != models.TargetTypeUser && targetType != models.TargetTypeRecipe {
		return nil, services.ErrInvalidTargetType
	}
	return &dto.ReportGroupDetail{ReportGroup: dto.ReportGroup{TargetType: targetType, TargetID: targetID}}, nil
}

type fakeInbox struct{}

func (fakeInbox) List(_ context.Context, _ uuid.UUID, page dto.PageRequest) (*dto.NotificationPage, error) {
	return &dto.NotificationPage{Page: page.Page}, nil
}

func (fakeInbox) UnreadCount(context.Context, uuid.UUID) (int64, error) { return 4, nil }

func (fakeInbox) MarkRead(context.Context, uuid.UUID, uuid.UUID) error {
	return services.ErrNotificationNotFound
}

// withUser stands in for JWTProtected.
func withUser(id uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": id.String()}))
		return c.Next()
	}
}

func newTestApp(userID uuid.UUID, reports *fakeReports) *fiber.App {
	app := fiber.New()
	user := NewReportHandler(reports)
	admin := NewAdminReportHandler(reports, fakeGroups{})
	inbox := NewNotificationHandler(fakeInbox{})

	app.Post("/anon/reports", user.CreateReport)

	api := app.Group("/api", withUser(userID))
	api.Post("/reports", user.CreateReport)
	api.Get("/reports/me", user.ListMyReports)
	api.Get("/notifications/unread-count", inbox.UnreadCount)
	api.Put("/notifications/:id/read", inbox.MarkRead)
	api.Get("/admin/reports", admin.ListReports)
	api.Get("/admin/reports/statistics", admin.Statistics)
	api.Get("/admin/reports/groups/:targetType/:targetId", admin.GetGroup)
	api.Get("/admin/reports/:id", admin.GetReport)
	api.Put("/admin/reports/:id/review", admin.ReviewReport)
	api.Delete("/admin/reports/:id", admin.DeleteReport)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, dto.ErrorResponse, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var errResp dto.ErrorResponse
	_ = json.Unmarshal(raw, &errResp)
	return resp.StatusCode, errResp, string(raw)
}

func TestCreateReportHandler(t *testing.T) {
	reports := &fakeReports{}
	app := newTestApp(uuid.New(), reports)
	recipe := uuid.New()

	status, _, _ := doJSON(t, app, http.MethodPost, "/api/reports",
		`{"recipe_id":"`+recipe.String()+`","report_type":"SPAM","reason":"ads"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	require.NotNil(t, reports.created)
	assert.Equal(t, recipe, *reports.created.RecipeID)
}

func TestCreateReportValidation(t *testing.T) {
	app := newTestApp(uuid.New(), &fakeReports{})

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/reports", `{"report_type":"SPAM"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Equal(t, "is required", body.Fields["reason"])

	status, body, _ = doJSON(t, app, http.MethodPost, "/api/reports", `{"reason":"`+strings.Repeat("x", 501)+`","report_type":"SPAM"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body.Fields["reason"], "500")

	status, _, _ = doJSON(t, app, http.MethodPost, "/api/reports", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateReportMapsDomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrReportAlreadyExists, fiber.StatusConflict, "REPORT_ALREADY_EXISTS"},
		{services.ErrCannotReportYourself, fiber.StatusBadRequest, "CANNOT_REPORT_YOURSELF"},
		{services.ErrReportedRecipeNotFound, fiber.StatusNotFound, "REPORTED_RECIPE_NOT_FOUND"},
		{errors.New("db down"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			app := newTestApp(uuid.New(), &fakeReports{createErr: tt.err})
			status, body, _ := doJSON(t, app, http.MethodPost, "/api/reports", `{"report_type":"SPAM","reason":"r"}`)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.True(t, body.Error)
		})
	}
}

func TestCreateReportRequiresUser(t *testing.T) {
	app := newTestApp(uuid.New(), &fakeReports{})
	status, body, _ := doJSON(t, app, http.MethodPost, "/anon/reports", `{"report_type":"SPAM","reason":"r"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestListReportsFilter(t *testing.T) {
	reports := &fakeReports{}
	app := newTestApp(uuid.New(), reports)

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/admin/reports?status=pending&report_type=SPAM&action_type=USER_BANNED&page=2&size=5", "")
	assert.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, reports.lastFilter.Status)
	assert.Equal(t, models.ReportStatusPending, *reports.lastFilter.Status)
	assert.Equal(t, models.ReportTypeSpam, *reports.lastFilter.ReportType)
	assert.Equal(t, models.ActionUserBanned, *reports.lastFilter.ActionType)
	assert.Equal(t, dto.PageRequest{Page: 2, Size: 5}, reports.lastFilter.Page)

	status, body, _ := doJSON(t, app, http.MethodGet, "/api/admin/reports?status=LOST", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATUS", body.Code)

	status, body, _ = doJSON(t, app, http.MethodGet, "/api/admin/reports?report_type=RUDE", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REPORT_TYPE", body.Code)
}

func TestAdminReportEndpoints(t *testing.T) {
	adminID := uuid.New()
	reports := &fakeReports{deleteErr: services.ErrReportNotFound}
	app := newTestApp(adminID, reports)

	status, body, _ := doJSON(t, app, http.MethodGet, "/api/admin/reports/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body.Code)

	status, body, _ = doJSON(t, app, http.MethodGet, "/api/admin/reports/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "REPORT_NOT_FOUND", body.Code)

	status, _, _ = doJSON(t, app, http.MethodPut, "/api/admin/reports/"+uuid.NewString()+"/review", `{"action_taken":"USER_BANNED"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, adminID, reports.reviewedBy)

	status, body, _ = doJSON(t, app, http.MethodPut, "/api/admin/reports/"+uuid.NewString()+"/review", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "is required", body.Fields["action_taken"])

	status, body, _ = doJSON(t, app, http.MethodDelete, "/api/admin/reports/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "REPORT_NOT_FOUND", body.Code)

	status, body, _ = doJSON(t, app, http.MethodGet, "/api/admin/reports/statistics", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, "db down")
}

func TestReviewReportMapsConflict(t *testing.T) {
	app := newTestApp(uuid.New(), &fakeReports{reviewErr: services.ErrReportAlreadyReviewed})
	status, body, _ := doJSON(t, app, http.MethodPut, "/api/admin/reports/"+uuid.NewString()+"/review", `{"action_taken":"NO_ACTION"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "REPORT_ALREADY_REVIEWED", body.Code)
}

func TestGetGroupHandler(t *testing.T) {
	app := newTestApp(uuid.New(), &fakeReports{})
	target := uuid.New()

	status, _, raw := doJSON(t, app, http.MethodGet, "/api/admin/reports/groups/recipe/"+target.String(), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, raw, `"target_type":"RECIPE"`)

	status, body, _ := doJSON(t, app, http.MethodGet, "/api/admin/reports/groups/comment/"+target.String(), "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_TARGET_TYPE", body.Code)

	status, _, _ = doJSON(t, app, http.MethodGet, "/api/admin/reports/groups/user/xyz", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestNotificationHandlers(t *testing.T) {
	app := newTestApp(uuid.New(), &fakeReports{})

	status, _, raw := doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"unread":4}`, raw)

	status, body, _ := doJSON(t, app, http.MethodPut, "/api/notifications/"+uuid.NewString()+"/read", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", body.Code)
}

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	healthy := NewHealthHandler(func() error { return nil }, func() int { return 2 })
	sick := NewHealthHandler(func() error { return errors.New("refused") }, func() int { return 0 })
	app.Get("/ok", healthy.Check)
	app.Get("/sick", sick.Check)

	status, _, raw := doJSON(t, app, http.MethodGet, "/ok", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, raw, `"notify_queue_depth":2`)

	status, _, raw = doJSON(t, app, http.MethodGet, "/sick", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, raw, "unhealthy: refused")
}
