package http_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const testIssuer = "pos-api-test"

var (
	keysOnce  sync.Once
	signKey   *rsa.PrivateKey
	strangerK *rsa.PrivateKey
)

func testKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	keysOnce.Do(func() {
		var err error
		if signKey, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
			panic(err)
		}
		if strangerK, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
			panic(err)
		}
	})
	return signKey, strangerK
}

func testManager(t *testing.T) *pkgjwt.Manager {
	t.Helper()
	key, _ := testKeys(t)
	m, err := pkgjwt.NewManager(key, &key.PublicKey, testIssuer)
	require.NoError(t, err)
	return m
}

// testEnv aplicación completa sobre el repositorio en memoria.
type testEnv struct {
	app     *fiber.App
	repo    *memory.Repository
	tokens  *pkgjwt.Manager
	metrics *apphttp.Metrics
	logs    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logs := &bytes.Buffer{}
	log, err := logger.New(logger.Config{Env: "test", Level: "debug", Output: logs})
	require.NoError(t, err)

	repo := memory.NewRepository()
	tokens := testManager(t)
	reg := prometheus.NewRegistry()
	metrics := apphttp.NewMetrics(reg)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    auth.NewAuthUseCase(repo, tokens, auth.Config{BcryptCost: bcrypt.MinCost}),
		StoreUC:   usecase.NewStoreUseCase(repo),
		ProductUC: usecase.NewProductUseCase(repo),
		Tokens:    tokens,
		Log:       log,
		Metrics:   metrics,
		Gatherer:  reg,
		AppName:   "pos-api-test",
	})
	return &testEnv{app: app, repo: repo, tokens: tokens, metrics: metrics, logs: logs}
}

// do lanza la petición y decodifica el cuerpo JSON (si lo hay).
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, bearer string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp, out
}
