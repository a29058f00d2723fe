package apiv1

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/middleware"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/testutil"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

func newTestApp(t *testing.T, svc *contribution.Service, uc usercontext.UserContext) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.Set(c, uc)
		return c.Next()
	})
	RegisterHandlersWithOptions(app, NewAPIServer(svc), FiberServerOptions{
		BaseURL: "/api/v1",
		Middlewares: map[string][]fiber.Handler{
			"GetActiveRound":  {middleware.RequireAPISessionAuth},
			"GetRoundSummary": {middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin},
		},
	})
	return app
}

func TestGetPing(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := contribution.NewService(repository.NewRepositories(db), nil, nil, contribution.StaticConfig(contribution.DefaultConfig()))
	app := newTestApp(t, svc, usercontext.UserContext{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var pong Pong
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pong))
	assert.Equal(t, "pong", pong.Ping)
}

func TestGetActiveRound(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixture(t, db)
	svc := contribution.NewService(repository.NewRepositories(db), nil, nil, contribution.StaticConfig(contribution.DefaultConfig()))

	regular := fx.Type("Gemüse", "100", 0)
	anna := fx.Member("anna@example.com")
	sub := fx.Subscription(anna, testutil.Date(2024, 1, 1), regular)
	guest := fx.Member("gast@example.com")

	// no login
	app := newTestApp(t, svc, usercontext.UserContext{})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/active", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	member := newTestApp(t, svc, usercontext.UserContext{MemberID: anna.ID, IsLoggedIn: true})
	resp, err = member.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/active", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	round := fx.Round("Runde 2025", models.ROUND_STATUS_ACTIVE, func(r *models.ContributionRound) {
		r.OtherAmount = true
	})
	solidarity := fx.Option(round, "Solidarisch", testutil.Float(1.2), true, 1)
	fx.Option(round, "Versteckt", testutil.Float(2), false, 2)
	fx.Selection(round, sub, solidarity, "120")

	resp, err = member.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/active", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out ActiveRound
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Runde 2025", out.Name)
	assert.Equal(t, "CHF", out.Currency)
	require.Len(t, out.Options, 1)
	assert.Equal(t, "Solidarisch", out.Options[0].Name)
	require.NotNil(t, out.Options[0].Price)
	assert.Equal(t, "120.00", *out.Options[0].Price)
	require.NotNil(t, out.NominalPrice)
	assert.Equal(t, "100.00", *out.NominalPrice)
	require.NotNil(t, out.Selection)
	assert.Equal(t, "120.00", out.Selection.Price)

	// members without a subscription see the options without prices
	other := newTestApp(t, svc, usercontext.UserContext{MemberID: guest.ID, IsLoggedIn: true})
	resp, err = other.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/active", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out = ActiveRound{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Options, 1)
	assert.Nil(t, out.Options[0].Price)
	assert.Nil(t, out.Selection)
}

func TestGetRoundSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixture(t, db)
	svc := contribution.NewService(repository.NewRepositories(db), nil, nil, contribution.StaticConfig(contribution.DefaultConfig()))

	regular := fx.Type("Gemüse", "100", 0)
	anna := fx.Member("anna@example.com")
	ben := fx.Member("ben@example.com")
	annaSub := fx.Subscription(anna, testutil.Date(2024, 1, 1), regular)
	fx.Subscription(ben, testutil.Date(2024, 1, 1), regular)

	round := fx.Round("Runde 2025", models.ROUND_STATUS_ACTIVE, func(r *models.ContributionRound) {
		r.TargetAmount = testutil.Money("200")
	})
	opt := fx.Option(round, "Solidarisch", testutil.Float(1.2), true, 1)
	fx.Selection(round, annaSub, opt, "120")

	member := newTestApp(t, svc, usercontext.UserContext{MemberID: anna.ID, IsLoggedIn: true})
	resp, err := member.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/1/summary", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := newTestApp(t, svc, usercontext.UserContext{MemberID: anna.ID, IsLoggedIn: true, IsAdmin: true})
	resp, err = admin.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/abc/summary", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = admin.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/42/summary", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = admin.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/rounds/1/summary", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out RoundSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.SubjectSubscriptions)
	assert.Equal(t, 1, out.Submitted)
	assert.Equal(t, "50.00", out.Progress)
	assert.Equal(t, "120.00", out.TotalSelected)
	assert.Equal(t, "100.00", out.TotalUnselected)
	assert.Equal(t, "220.00", out.CurrentTotal)
	assert.Equal(t, "200.00", out.Target)
	assert.Equal(t, "110.00", out.TargetPercentage)
	require.Len(t, out.Options, 1)
	assert.Equal(t, 1, out.Options[0].SelectionCount)
}
