package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"app/advisor"
	"app/forecast"
	"app/models"
	"app/solver"
)

type stubSource struct {
	products []models.Product
	items    []models.SaleItem
}

func (s *stubSource) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubSource) ListSaleItemsSince(ctx context.Context, userID string, since time.Time) ([]models.SaleItem, error) {
	return s.items, nil
}

func newAdvisorTestApp(src *stubSource) *fiber.App {
	Init(advisor.NewPlanner(src, solver.BranchAndBound{}, forecast.TieredShelf{}), nil)

	app := fiber.New()
	app.Post("/api/v1/advisor/optimize", func(c *fiber.Ctx) error {
		c.Locals("userID", "u1")
		return HandleOptimizeBudget(c)
	})
	return app
}

func postJSON(app *fiber.App, path, body string) (int, string) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	payload, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(payload)
}

func TestOptimizeRejectsMissingBudget(t *testing.T) {
	app := newAdvisorTestApp(&stubSource{})

	status, body := postJSON(app, "/api/v1/advisor/optimize", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "Invalid budget")
}

func TestOptimizeRejectsNonPositiveBudget(t *testing.T) {
	app := newAdvisorTestApp(&stubSource{})

	status, _ := postJSON(app, "/api/v1/advisor/optimize", `{"budget": -50}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOptimizeEmptyAccountSucceeds(t *testing.T) {
	app := newAdvisorTestApp(&stubSource{})

	status, body := postJSON(app, "/api/v1/advisor/optimize", `{"budget": 50000}`)
	assert.Equal(t, fiber.StatusOK, status)

	var envelope struct {
		Status string       `json:"status"`
		Data   advisor.Plan `json:"data"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Empty(t, envelope.Data.Recommendations)
	assert.NotEmpty(t, envelope.Data.Summary.Message)
}

func TestOptimizeReturnsRankedPlan(t *testing.T) {
	src := &stubSource{
		products: []models.Product{
			{ID: "p1", UserID: "u1", Name: "Rice", CostPrice: 800, SellingPrice: 1000, Stock: 0, CreatedAt: time.Now().AddDate(0, 0, -120)},
			{ID: "p2", UserID: "u1", Name: "Phone", CostPrice: 5000, SellingPrice: 8000, Stock: 0, CreatedAt: time.Now().AddDate(0, 0, -120)},
		},
	}
	app := newAdvisorTestApp(src)

	status, body := postJSON(app, "/api/v1/advisor/optimize", `{"budget": 100000, "periodDays": 30}`)
	assert.Equal(t, fiber.StatusOK, status)

	var envelope struct {
		Data advisor.Plan `json:"data"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.NotEmpty(t, envelope.Data.Recommendations)
	assert.LessOrEqual(t, envelope.Data.Summary.TotalCost, 100000.0)
	for i := 1; i < len(envelope.Data.Recommendations); i++ {
		assert.GreaterOrEqual(t, envelope.Data.Recommendations[i-1].Profit, envelope.Data.Recommendations[i].Profit)
	}
}
