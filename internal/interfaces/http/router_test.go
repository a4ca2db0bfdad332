package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-count-api/internal/application/apptest"
	"github.com/jhoicas/inventory-count-api/internal/application/auth"
	"github.com/jhoicas/inventory-count-api/internal/application/catalog"
	"github.com/jhoicas/inventory-count-api/internal/application/counting"
	"github.com/jhoicas/inventory-count-api/internal/application/dashboard"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
	"github.com/jhoicas/inventory-count-api/internal/application/session"
	"github.com/jhoicas/inventory-count-api/internal/application/usecase"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/rawexport"
	apphttp "github.com/jhoicas/inventory-count-api/internal/interfaces/http"
)

const testMaxUpload = 1 << 10

type testServer struct {
	app   *fiber.App
	store *apptest.Store
	auth  *auth.AuthUseCase
	logs  *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := apptest.NewStore()
	sessions := &apptest.SessionRepo{S: s}
	counts := &apptest.CountRepo{S: s}
	expected := &apptest.ExpectedRepo{S: s}
	products := &apptest.ProductRepo{S: s}
	users := &apptest.UserRepo{S: s}
	teams := &apptest.TeamRepo{S: s}
	locations := &apptest.LocationRepo{S: s}
	tx := &apptest.TxRunner{S: s}
	log := zerolog.Nop()

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log)
	dashboardUC := dashboard.NewUseCase(sessions, counts, expected, products)
	exportUC := export.NewUseCase(dashboardUC, sessions, counts, locations, pdf.NewMarotoPDFGenerator("test"), map[string]export.RawEncoder{
		"csv": rawexport.NewCSVEncoder(),
		"xml": rawexport.NewXMLEncoder(),
	})

	logs := &bytes.Buffer{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.New(logs)))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		SessionUC:      session.NewUseCase(sessions, counts, users, log),
		RegisterCount:  counting.NewRegisterCountUseCase(tx, log),
		DashboardUC:    dashboardUC,
		CatalogUC:      catalog.NewUseCase(tx, sessions, products, log),
		ExportUC:       exportUC,
		TeamUC:         usecase.NewTeamUseCase(teams),
		UserUC:         usecase.NewUserUseCase(users, teams),
		LocationUC:     usecase.NewLocationUseCase(locations),
		JWTSecret:      testJWTSecret,
		MaxUploadBytes: testMaxUpload,
		ServiceName:    "inventory-count-test",
	})
	return &testServer{app: app, store: s, auth: authUC, logs: logs}
}

func (ts *testServer) do(t *testing.T, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	return ts.send(t, req)
}

func (ts *testServer) send(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (ts *testServer) addSession(status entity.SessionStatus) string {
	id := uuid.NewString()
	ts.store.Sessions[id] = entity.InventorySession{ID: id, ClientName: "Farmacia Centro", Status: status, StartDate: time.Now().UTC()}
	return id
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e.Code
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, raw := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"inventory-count-test"}`, string(raw))
}

func TestLogin_AdminSembrado(t *testing.T) {
	ts := newTestServer(t)
	created, err := ts.auth.SeedAdmin(context.Background(), "admin@inventory.com", "Admin123!")
	require.NoError(t, err)
	require.True(t, created)

	resp, raw := ts.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ADMIN@inventory.com", Password: "Admin123!"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	resp, raw = ts.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@inventory.com", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, raw))
}

func TestRegisterCount_FlujoCompleto(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Products["7891000100103"] = entity.Product{ID: uuid.NewString(), EAN: "7891000100103", Name: "Leche", Category: "Lácteos"}

	resp, raw := ts.do(t, http.MethodPost, "/api/inventorysession", entity.RoleManager, dto.CreateSessionRequest{ClientName: "Farmacia Centro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.SessionResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Open", created.Status)

	qty := 4
	for want := 1; want <= 2; want++ {
		resp, raw = ts.do(t, http.MethodPost, "/api/inventorysession/"+created.ID+"/count", entity.RoleCounter,
			dto.RegisterCountRequest{EAN: "7891000100103", Quantity: &qty})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		var out dto.RegisterCountResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, want, out.Version)
	}
	assert.Equal(t, entity.SessionInProgress, ts.store.Sessions[created.ID].Status)

	resp, raw = ts.do(t, http.MethodGet, "/api/inventorysession/"+created.ID+"/dashboard", entity.RoleCounter, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var dash dto.DashboardDTO
	require.NoError(t, json.Unmarshal(raw, &dash))
	assert.Equal(t, "InProgress", dash.Status)
	assert.Equal(t, 1, dash.CountedSKUs)
	assert.Equal(t, 8, dash.TotalItems)
	assert.Equal(t, 100, dash.Progress)
	require.Len(t, dash.RecentCounts, 2)
	assert.Equal(t, "Leche", dash.RecentCounts[0].ProductName)
	assert.Empty(t, dash.RecentCounts[0].ProductLocation)
}

func TestRegisterCount_Errores(t *testing.T) {
	ts := newTestServer(t)
	closed := ts.addSession(entity.SessionClosed)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{"sesión cerrada", "/api/inventorysession/" + closed + "/count", dto.RegisterCountRequest{EAN: "1"}, http.StatusConflict, "SESSION_CLOSED"},
		{"sesión inexistente", "/api/inventorysession/" + uuid.NewString() + "/count", dto.RegisterCountRequest{EAN: "1"}, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"EAN vacío", "/api/inventorysession/" + closed + "/count", dto.RegisterCountRequest{EAN: " "}, http.StatusBadRequest, "VALIDATION"},
		{"id no uuid", "/api/inventorysession/abc/count", dto.RegisterCountRequest{EAN: "1"}, http.StatusNotFound, "SESSION_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := ts.do(t, http.MethodPost, tt.path, entity.RoleCounter, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, errorCode(t, raw))
		})
	}
	assert.Empty(t, ts.store.Counts)
}

func TestRouter_PermisosPorRol(t *testing.T) {
	ts := newTestServer(t)
	id := ts.addSession(entity.SessionOpen)

	tests := []struct {
		method string
		path   string
		role   string
		status int
	}{
		{http.MethodGet, "/api/inventorysession", entity.RoleCounter, http.StatusForbidden},
		{http.MethodGet, "/api/inventorysession", entity.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/api/inventorysession/" + id + "/progress", entity.RoleCounter, http.StatusForbidden},
		{http.MethodGet, "/api/inventorysession/" + id + "/dashboard", entity.RoleCounter, http.StatusOK},
		{http.MethodGet, "/api/export/raw-data/" + id, entity.RoleCounter, http.StatusForbidden},
		{http.MethodGet, "/api/user", entity.RoleCounter, http.StatusForbidden},
		{http.MethodGet, "/api/productlocation", entity.RoleCounter, http.StatusOK},
		{http.MethodGet, "/api/products", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.role, func(t *testing.T) {
			resp, _ := ts.do(t, tt.method, tt.path, tt.role, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestExportRawData_Formatos(t *testing.T) {
	ts := newTestServer(t)
	id := ts.addSession(entity.SessionInProgress)
	ts.store.Counts = []entity.InventoryCount{
		{ID: uuid.NewString(), SessionID: id, EAN: "789", Quantity: 2, Version: 1, UserID: testUserID, CountedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	base := "/api/export/raw-data/" + id

	resp, raw := ts.do(t, http.MethodGet, base, entity.RoleManager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []dto.RawCountDTO
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].CountVersion)

	resp, raw = ts.do(t, http.MethodGet, base+"?format=csv", entity.RoleManager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "conteos-"+id+".csv")
	assert.True(t, strings.HasPrefix(string(raw), "productLocationId,ean,quantity"))

	resp, raw = ts.do(t, http.MethodGet, base+"?format=xml", entity.RoleManager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "<inventoryCounts")

	resp, raw = ts.do(t, http.MethodGet, base+"?format=xlsx", entity.RoleManager, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))

	resp, _ = ts.do(t, http.MethodGet, "/api/export/raw-data/"+uuid.NewString(), entity.RoleManager, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboard_IDNoUUID(t *testing.T) {
	ts := newTestServer(t)
	resp, raw := ts.do(t, http.MethodGet, "/api/inventorysession/abc/dashboard", entity.RoleCounter, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, raw))
}

func multipartCSV(t *testing.T, path, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "planilla.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleManager))
	return req
}

func TestImportCSV(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.send(t, multipartCSV(t, "/api/import/products/csv", "ean;nombre;categoria;precio\n789;Leche;Lácteos;1,50\n"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "Leche", ts.store.Products["789"].Name)

	id := ts.addSession(entity.SessionOpen)
	resp, raw = ts.send(t, multipartCSV(t, "/api/import/expected-stock/"+id+"/csv", "ean,cantidad\n789,12\n"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.Len(t, ts.store.Expected, 1)
	assert.Equal(t, 12, ts.store.Expected[0].ExpectedQuantity)

	resp, raw = ts.send(t, multipartCSV(t, "/api/import/products/csv", "ean\n"+strings.Repeat("7891234567890\n", testMaxUpload/10)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "FILE_TOO_LARGE", errorCode(t, raw))

	resp, raw = ts.send(t, multipartCSV(t, "/api/import/products/csv", "ean;precio\n789;abc\n"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestErrorInterno_NoExponeDetalleYSeLoguea(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Err = errors.New("conexión rechazada")

	resp, raw := ts.do(t, http.MethodGet, "/api/team", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", errorCode(t, raw))
	assert.NotContains(t, string(raw), "conexión rechazada")

	logged := ts.logs.String()
	assert.Contains(t, logged, `"level":"error"`)
	assert.Contains(t, logged, "conexión rechazada")
	assert.Contains(t, logged, `"path":"/api/team"`)
}
