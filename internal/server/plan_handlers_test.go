package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"postpilot/internal/config"
	"postpilot/internal/generator"
	"postpilot/internal/models"
	"postpilot/internal/ratelimit"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPlanRepository is a mock of the PlanRepository interface
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) ListByUser(ctx context.Context, userID uint) ([]models.Plan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Plan, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetByIDForUserWithPosts(ctx context.Context, id, userID uint) (*models.Plan, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByPlan(ctx context.Context, planID uint) ([]models.Post, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockPostRepository) ReplaceForPlan(ctx context.Context, planID uint, posts []models.Post) error {
	args := m.Called(ctx, planID, posts)
	return args.Error(0)
}

// asUser injects the authenticated user ID the way AuthRequired would.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}

func newPlanTestApp(plans *MockPlanRepository, posts *MockPostRepository) (*fiber.App, *Server) {
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		planRepo: plans,
		postRepo: posts,
	}
	s.calendarService = service.NewCalendarService(
		plans, posts, &generator.MockClient{}, ratelimit.NewGenerateLimiter(nil))
	s.exportService = service.NewExportService(plans)

	app := fiber.New()
	app.Use(asUser(7))
	app.Get("/plans", s.GetPlans)
	app.Post("/plans", s.CreatePlan)
	app.Post("/plans/:id/generate", s.GenerateCalendar)
	app.Get("/plans/:id/export", s.ExportCalendar)
	app.Get("/plans/:id", s.GetPlan)
	app.Delete("/plans/:id", s.DeletePlan)
	return app, s
}

func TestGetPlans(t *testing.T) {
	plans := new(MockPlanRepository)
	app, _ := newPlanTestApp(plans, new(MockPostRepository))

	plans.On("ListByUser", mock.Anything, uint(7)).Return([]models.Plan{
		{ID: 2, UserID: 7, Name: "Q2 push"},
		{ID: 1, UserID: 7, Name: "Q1 launch"},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plans", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Plan
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got, 2)
	assert.Equal(t, "Q2 push", got[0].Name)
}

func TestCreatePlan(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		expectCreate   bool
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name": "Q1 launch", "niche": "fitness", "platform": "instagram",
				"goal": "growth", "tone": "casual",
			},
			expectCreate:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Platform Normalized To Lowercase",
			body: map[string]string{
				"name": "Q1 launch", "niche": "fitness", "platform": "Instagram",
				"goal": "growth", "tone": "casual",
			},
			expectCreate:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Field",
			body: map[string]string{
				"name": "Q1 launch", "platform": "instagram", "goal": "growth", "tone": "casual",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unsupported Platform",
			body: map[string]string{
				"name": "Q1 launch", "niche": "fitness", "platform": "myspace",
				"goal": "growth", "tone": "casual",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := new(MockPlanRepository)
			app, _ := newPlanTestApp(plans, new(MockPostRepository))

			if tt.expectCreate {
				plans.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Plan) bool {
					return p.UserID == 7 && p.Platform == "instagram"
				})).Return(nil)
			}

			resp, _ := app.Test(jsonRequest(http.MethodPost, "/plans", tt.body))
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			plans.AssertExpectations(t)
		})
	}
}

func TestGetPlan(t *testing.T) {
	plans := new(MockPlanRepository)
	app, _ := newPlanTestApp(plans, new(MockPostRepository))

	t.Run("Success", func(t *testing.T) {
		plans.On("GetByIDForUserWithPosts", mock.Anything, uint(1), uint(7)).
			Return(&models.Plan{ID: 1, UserID: 7, Name: "Q1 launch"}, nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/plans/1", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Not Found", func(t *testing.T) {
		plans.On("GetByIDForUserWithPosts", mock.Anything, uint(99), uint(7)).
			Return(nil, models.NewNotFoundError("Plan"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/plans/99", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/plans/abc", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeletePlan(t *testing.T) {
	plans := new(MockPlanRepository)
	app, _ := newPlanTestApp(plans, new(MockPostRepository))

	t.Run("Success", func(t *testing.T) {
		plans.On("DeleteForUser", mock.Anything, uint(1), uint(7)).Return(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/plans/1", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Not Found", func(t *testing.T) {
		plans.On("DeleteForUser", mock.Anything, uint(99), uint(7)).
			Return(models.NewNotFoundError("Plan"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/plans/99", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGenerateCalendar(t *testing.T) {
	plans := new(MockPlanRepository)
	posts := new(MockPostRepository)
	app, _ := newPlanTestApp(plans, posts)

	plan := &models.Plan{ID: 1, UserID: 7, Name: "Q1 launch", Niche: "fitness",
		Platform: "instagram", Goal: "growth", Tone: "casual"}
	hydrated := *plan
	hydrated.Posts = []models.Post{{ID: 100, PlanID: 1, Day: 1, Caption: "Kick off"}}

	plans.On("GetByIDForUser", mock.Anything, uint(1), uint(7)).Return(plan, nil)
	plans.On("GetByIDForUserWithPosts", mock.Anything, uint(1), uint(7)).Return(&hydrated, nil)
	posts.On("ReplaceForPlan", mock.Anything, uint(1), mock.Anything).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/plans/1/generate", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Plan
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.Posts, 1)
}

func TestGenerateCalendar_Failure(t *testing.T) {
	plans := new(MockPlanRepository)
	posts := new(MockPostRepository)

	s := &Server{config: &config.Config{JWTSecret: "test_secret"}, planRepo: plans, postRepo: posts}
	failing := &generator.MockClient{
		GenerateFunc: func(ctx context.Context, in generator.Input) (*models.GeneratedCalendar, error) {
			return nil, assert.AnError
		},
	}
	s.calendarService = service.NewCalendarService(plans, posts, failing, ratelimit.NewGenerateLimiter(nil))

	app := fiber.New()
	app.Use(asUser(7))
	app.Post("/plans/:id/generate", s.GenerateCalendar)

	plans.On("GetByIDForUser", mock.Anything, uint(1), uint(7)).
		Return(&models.Plan{ID: 1, UserID: 7}, nil)

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/plans/1/generate", nil), -1)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "GENERATION_FAILED", body.Code)
}

func TestExportCalendar(t *testing.T) {
	plans := new(MockPlanRepository)
	app, _ := newPlanTestApp(plans, new(MockPostRepository))

	plans.On("GetByIDForUserWithPosts", mock.Anything, uint(1), uint(7)).
		Return(&models.Plan{ID: 1, UserID: 7, Platform: "instagram",
			Posts: []models.Post{{ID: 10, Day: 1, Caption: "Kick off", Status: models.PostStatusDraft}},
		}, nil)

	t.Run("CSV", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/plans/1/export?format=csv", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "calendar-1.csv")
	})

	t.Run("JSON Default", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/plans/1/export", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	})
}
