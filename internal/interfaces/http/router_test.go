package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/usecase"
	"github.com/jhoicas/staffdir/internal/infrastructure/memory"
	"github.com/jhoicas/staffdir/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/staffdir/internal/interfaces/http"
	"github.com/jhoicas/staffdir/pkg/config"
	"github.com/jhoicas/staffdir/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la app completa sobre el backend en memoria y un sistema de archivos en memoria.
func buildTestApp(t *testing.T) (*fiber.App, afero.Fs) {
	t.Helper()
	store := memory.NewStore()
	fs := afero.NewMemMapFs()
	avatars := storage.NewAvatarStoreWithFs(fs, 1<<20)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "staffdir-test"},
		HTTP:    config.HTTPConfig{CORSOrigin: "*", BodyLimitMB: 2},
		Storage: config.StorageConfig{Root: t.TempDir()},
		Tracing: config.TracingConfig{ServiceName: "staffdir-test"},
	}
	log := logger.New(logger.Config{Env: "test", Level: "error", Out: io.Discard})

	app := apphttp.NewServer(cfg, log, apphttp.RouterDeps{
		UserUC:       usecase.NewUserUseCase(store.Users(), avatars, nil),
		CompanyUC:    usecase.NewCompanyUseCase(store.Companies(), nil),
		EmploymentUC: usecase.NewEmploymentUseCase(store.Users(), store.Companies(), store.Employments(), nil),
		Store:        store,
	})
	return app, fs
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return req
}

// multipartRequest arma un formulario con campos de texto y, si fileName no es vacío, un avatar.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("avatar", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createUser(t *testing.T, app *fiber.App, name, email string) dto.UserResponse {
	t.Helper()
	resp := do(t, app, multipartRequest(t, http.MethodPost, "/api/v1/users", map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              "123456",
		"password_confirmation": "123456",
	}, "avatar.png"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.UserResponse](t, resp)
}

func createCompany(t *testing.T, app *fiber.App, name, since string) dto.CompanyResponse {
	t.Helper()
	resp := do(t, app, jsonRequest(t, http.MethodPost, "/api/v1/companies", dto.CreateCompanyRequest{Name: name, Since: since}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.CompanyResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_CrearYObtener(t *testing.T) {
	app, fs := buildTestApp(t)

	created := createUser(t, app, "Ana", "ana@x.io")
	assert.NotEmpty(t, created.ID)
	exists, err := afero.Exists(fs, created.Avatar)
	require.NoError(t, err)
	assert.True(t, exists, "el avatar debe quedar en el almacenamiento")

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+created.ID, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "password", "la respuesta nunca incluye el password")

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 1)
}

func TestUsers_CrearValidacion(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, multipartRequest(t, http.MethodPost, "/api/v1/users", map[string]string{
		"name":  "Ana",
		"email": "no-es-email",
	}, ""))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	fields := make([]string, 0, len(body.Fields))
	for _, f := range body.Fields {
		fields = append(fields, f.Field)
	}
	assert.Subset(t, fields, []string{"email", "password", "avatar"})
}

func TestUsers_EmailDuplicado(t *testing.T) {
	app, _ := buildTestApp(t)
	createUser(t, app, "Ana", "ana@x.io")

	resp := do(t, app, multipartRequest(t, http.MethodPost, "/api/v1/users", map[string]string{
		"name": "Otra", "email": "ana@x.io", "password": "123456", "password_confirmation": "123456",
	}, "otra.gif"))

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)
}

func TestUsers_NoEncontrado(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/no-existe", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestUsers_ListarParametrosInvalidos(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users?sort_by=password&limit=2", nil))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, decode[dto.ErrorResponse](t, resp).Fields, 2)
}

func TestUsers_ActualizarJSON(t *testing.T) {
	app, _ := buildTestApp(t)
	u := createUser(t, app, "Ana", "ana@x.io")

	resp := do(t, app, jsonRequest(t, http.MethodPatch, "/api/v1/users/"+u.ID, map[string]string{"name": "Ana María"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana María", decode[dto.UserResponse](t, resp).Name)

	resp = do(t, app, jsonRequest(t, http.MethodPut, "/api/v1/users/"+u.ID, map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_CicloDeVida(t *testing.T) {
	app, fs := buildTestApp(t)
	u := createUser(t, app, "Ana", "ana@x.io")

	resp := do(t, app, jsonRequest(t, http.MethodDelete, "/api/v1/users/"+u.ID, dto.DeleteRequest{Mode: "trash"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, decode[dto.UserResponse](t, resp).DeletedAt)

	resp = do(t, app, jsonRequest(t, http.MethodDelete, "/api/v1/users/"+u.ID, dto.DeleteRequest{Mode: "trash"}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+u.ID+"?mode=restore", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[dto.UserResponse](t, resp).DeletedAt)

	resp = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+u.ID, nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "mode es requerido")

	resp = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+u.ID+"?mode=erase", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	dirExists, _ := afero.DirExists(fs, "users/"+u.ID)
	assert.False(t, dirExists)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+u.ID, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Companies y relaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanies_CrearYListar(t *testing.T) {
	app, _ := buildTestApp(t)
	createCompany(t, app, "Nueva", "2020-01-01")
	createCompany(t, app, "Vieja", "1950-06-15T12:00:00Z")

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/companies?sort_by=since", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.CompanyResponse](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "Vieja", list[0].Name)
	assert.Equal(t, "1950-06-15", list[0].Since)

	resp = do(t, app, jsonRequest(t, http.MethodPost, "/api/v1/companies", map[string]string{"name": "X", "since": "ayer"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRelaciones_EmpresaYColegas(t *testing.T) {
	app, _ := buildTestApp(t)
	acme := createCompany(t, app, "Acme", "2001-02-03")
	ana := createUser(t, app, "Ana", "ana@x.io")
	beto := createUser(t, app, "Beto", "beto@x.io")

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+ana.ID+"/company", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "sin empresa asignada")

	for _, u := range []dto.UserResponse{ana, beto} {
		resp = do(t, app, jsonRequest(t, http.MethodPut, "/api/v1/users/"+u.ID+"/company",
			dto.EmployRequest{CompanyID: acme.ID, Position: "dev"}))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+ana.ID+"/company", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, acme.ID, decode[dto.CompanyResponse](t, resp).ID)

	for _, path := range []string{"/collegues", "/colleagues"} {
		resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+ana.ID+path, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		colleagues := decode[[]dto.UserResponse](t, resp)
		require.Len(t, colleagues, 1)
		assert.Equal(t, beto.ID, colleagues[0].ID)
	}

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/companies/"+acme.ID+"/users", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 2)

	resp = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+ana.ID+"/company", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+ana.ID+"/company", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Store: "up"}, decode[dto.HealthResponse](t, resp))
}

func TestRutaInexistente_ErrorJSONYRequestID(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/nada", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRequestID_SeRespeta(t *testing.T) {
	app, _ := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")

	resp := do(t, app, req)

	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))
}
