package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/studiosadmin/admin-console/internal/api/http/handlers"
	"github.com/studiosadmin/admin-console/internal/auth"
	"github.com/studiosadmin/admin-console/internal/config"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/observability"
	"github.com/studiosadmin/admin-console/internal/repository/memstore"
	"github.com/studiosadmin/admin-console/internal/service"
)

type RouterSuite struct {
	suite.Suite
	app    *fiber.App
	cookie *nethttp.Cookie
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	store := memstore.New()
	repos := store.Repositories()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authCfg := config.AuthConfig{
		JWTSecret:       "router-test",
		TokenTTLMinutes: 60,
		AdminUsers:      map[string]string{"admin": "secret"},
	}
	tokens := auth.NewTokenManager(authCfg.JWTSecret, authCfg.TokenTTLMinutes)

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Metrics:  metrics,
		Timeout:  5 * time.Second,
		Sessions: auth.NewSessionMiddleware(tokens),
	})
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("admin-console", "test", metrics, handlers.Dependency{Name: "store", Pinger: store}),
		Auth:    handlers.NewAuthHandler(service.NewAuthService(authCfg, tokens, nil), false),
		Members: handlers.NewMembersHandler(service.NewMemberService(service.MemberDependencies{MemberRepo: repos.Members, Dispatcher: dispatcher})),
		BugReports: handlers.NewBugReportsHandler(service.NewBugReportService(service.BugReportDependencies{
			BugReportRepo: repos.BugReports,
			CounterRepo:   repos.Counters,
			Dispatcher:    dispatcher,
		})),
		System: handlers.NewSystemHandler(service.NewSystemService(repos.SystemStates, dispatcher, nil), nil),
		Metrics: handlers.NewMetricsHandler(service.NewMetricsService(service.MetricsDependencies{
			StatsRepo:     repos.Stats,
			UsageRepo:     repos.Usage,
			MemberRepo:    repos.Members,
			BugReportRepo: repos.BugReports,
			TotalMB:       500,
			Dispatcher:    dispatcher,
		}), nil),
		ProtectAdminRoutes: true,
	})
	s.app = app
	s.cookie = nil
}

func (s *RouterSuite) do(method, path, body string) (*nethttp.Response, map[string]any) {
	resp, raw := s.doRaw(method, path, body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &out))
	}
	return resp, out
}

func (s *RouterSuite) doRaw(method, path, body string) (*nethttp.Response, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, raw
}

func (s *RouterSuite) login() {
	resp, body := s.do(fiber.MethodPost, "/api/admin-login", `{"username":"admin","password":"secret"}`)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			s.cookie = c
		}
	}
	s.Require().NotNil(s.cookie, "session cookie missing")
	s.True(s.cookie.HttpOnly)
}

func (s *RouterSuite) TestLoginRejectsBadCredentials() {
	resp, body := s.do(fiber.MethodPost, "/api/admin-login", `{"username":"admin","password":"nope"}`)
	s.Equal(nethttp.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid credentials", body["error"])
	s.Empty(resp.Cookies())
}

func (s *RouterSuite) TestMeAndLogout() {
	resp, body := s.do(fiber.MethodGet, "/api/auth/me", "")
	s.Equal(nethttp.StatusUnauthorized, resp.StatusCode)
	s.Equal(false, body["authenticated"])

	s.login()
	resp, body = s.do(fiber.MethodGet, "/api/auth/me", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal(true, body["authenticated"])
	s.Equal("admin", body["username"])

	resp, _ = s.do(fiber.MethodPost, "/api/logout", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName && c.Value == "" {
			cleared = true
		}
	}
	s.True(cleared)
}

func (s *RouterSuite) TestGuardedRoutesRequireSession() {
	for _, path := range []string{"/api/members", "/api/bug-reports", "/api/storage", "/api/dashboard/summary"} {
		resp, body := s.do(fiber.MethodGet, path, "")
		s.Equal(nethttp.StatusUnauthorized, resp.StatusCode, path)
		s.Equal("UNAUTHORIZED", body["code"], path)
	}
	resp, _ := s.do(fiber.MethodPost, "/api/admin/crash", `{"crashed":true}`)
	s.Equal(nethttp.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterSuite) TestMemberLifecycle() {
	s.login()

	resp, body := s.do(fiber.MethodPost, "/api/members", `{"username":"nina","password":"pw","access":{"assets":true}}`)
	s.Require().Equal(nethttp.StatusCreated, resp.StatusCode)
	id, _ := body["_id"].(string)
	s.Require().NotEmpty(id)
	access, _ := body["access"].(map[string]any)
	s.Equal(true, access["assets"])
	s.Equal(true, access["dashboard"])
	s.Equal(false, access["developer"])

	resp, body = s.do(fiber.MethodPost, "/api/members", `{"username":"nina","password":"pw"}`)
	s.Equal(nethttp.StatusConflict, resp.StatusCode)
	s.Equal("Username already exists.", body["error"])

	resp, body = s.do(fiber.MethodPut, "/api/members/"+id+"/access", `{"field":"developer","value":true}`)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal("Access updated successfully.", body["message"])
	user, _ := body["user"].(map[string]any)
	access, _ = user["access"].(map[string]any)
	s.Equal(true, access["developer"])

	resp, body = s.do(fiber.MethodPut, "/api/members/"+id+"/access", `{"field":"root","value":true}`)
	s.Equal(nethttp.StatusBadRequest, resp.StatusCode)
	s.Equal("Invalid access field.", body["error"])

	resp, _ = s.do(fiber.MethodPut, "/api/members/"+id+"/access", `{"field":"developer"}`)
	s.Equal(nethttp.StatusBadRequest, resp.StatusCode)

	resp, raw := s.doRaw(fiber.MethodGet, "/api/members?search=NI", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	var list []map[string]any
	s.Require().NoError(json.Unmarshal(raw, &list))
	s.Len(list, 1)

	resp, _ = s.do(fiber.MethodDelete, "/api/members/"+id, "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)

	resp, body = s.do(fiber.MethodGet, "/api/members/"+id, "")
	s.Equal(nethttp.StatusNotFound, resp.StatusCode)
	s.Equal("NOT_FOUND", body["code"])
}

func (s *RouterSuite) TestBugReportFlow() {
	resp, body := s.do(fiber.MethodPost, "/api/bug-reports",
		`{"userId":"u1","username":"ivan","title":"Crash","description":"On export","rating":4}`)
	s.Require().Equal(nethttp.StatusCreated, resp.StatusCode)
	s.Equal(float64(1), body["ticketNumber"])
	s.Equal("Open", body["status"])
	id, _ := body["_id"].(string)

	resp, body = s.do(fiber.MethodPost, "/api/bug-reports", `{"userId":"u1"}`)
	s.Equal(nethttp.StatusBadRequest, resp.StatusCode)
	s.Equal("Missing required fields.", body["error"])

	s.login()
	resp, body = s.do(fiber.MethodPut, "/api/bug-reports/resolve/"+id, `{"resolutionMessage":"Fixed in 2.1"}`)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal("Resolved", body["status"])
	s.Equal("Fixed in 2.1", body["resolutionMessage"])

	resp, raw := s.doRaw(fiber.MethodGet, "/api/bug-reports?status=Open", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	s.JSONEq(`[]`, string(raw))

	resp, _ = s.do(fiber.MethodPut, "/api/bug-reports/resolve/missing", "")
	s.Equal(nethttp.StatusNotFound, resp.StatusCode)
}

func (s *RouterSuite) TestCrashFlag() {
	resp, body := s.do(fiber.MethodGet, "/api/admin/crash", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal(false, body["crashed"])

	s.login()
	resp, body = s.do(fiber.MethodPost, "/api/admin/crash", `{"crashed":true}`)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal(true, body["crashed"])
	s.Equal("System state updated successfully", body["message"])

	resp, _ = s.do(fiber.MethodPost, "/api/admin/crash", `{"crashed":"yes"}`)
	s.Equal(nethttp.StatusBadRequest, resp.StatusCode)

	s.cookie = nil
	_, body = s.do(fiber.MethodGet, "/api/admin/crash", "")
	s.Equal(true, body["crashed"])
}

func (s *RouterSuite) TestUsage() {
	resp, body := s.do(fiber.MethodPost, "/api/usage", `{"seconds":10}`)
	s.Equal(nethttp.StatusBadRequest, resp.StatusCode)
	s.Equal(false, body["success"])
	s.Equal("No userId provided", body["error"])

	resp, body = s.do(fiber.MethodGet, "/api/usage?userId=u1", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	s.Nil(body["usage"])

	s.do(fiber.MethodPost, "/api/usage", `{"userId":"u1","seconds":40}`)
	resp, body = s.do(fiber.MethodPost, "/api/usage", `{"userId":"u1","seconds":20}`)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	usage, _ := body["usage"].(map[string]any)
	s.Equal(float64(60), usage["seconds"])
}

func (s *RouterSuite) TestStorageAndSummary() {
	s.login()
	resp, body := s.do(fiber.MethodGet, "/api/storage", "")
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])
	data, _ := body["data"].(map[string]any)
	s.Equal(float64(500), data["totalStorageMB"])
	pct, _ := data["usedPercentage"].(float64)
	s.GreaterOrEqual(pct, 0.0)
	s.LessOrEqual(pct, 100.0)

	resp, body = s.do(fiber.MethodGet, "/api/dashboard/summary", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	s.Contains(body, "accessDistribution")
}

func (s *RouterSuite) TestHealthAndUnknownRoute() {
	resp, body := s.do(fiber.MethodGet, "/health/ready", "")
	s.Equal(nethttp.StatusOK, resp.StatusCode)
	s.Equal("ready", body["status"])

	resp, body = s.do(fiber.MethodGet, "/api/nope", "")
	s.Equal(nethttp.StatusNotFound, resp.StatusCode)
	s.Equal("NOT_FOUND", body["code"])
}
