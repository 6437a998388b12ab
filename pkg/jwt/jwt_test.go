package jwt_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

const testIssuer = "pos-api-test"

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func rsaKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

func newManager(t *testing.T) *pkgjwt.Manager {
	t.Helper()
	key := rsaKey(t)
	m, err := pkgjwt.NewManager(key, &key.PublicKey, testIssuer)
	require.NoError(t, err)
	return m
}

func TestJWT_GenerateAndParse_ConStoreYRole(t *testing.T) {
	m := newManager(t)
	tok, err := m.Generate(pkgjwt.TokenInput{
		UserID: 42, UUID: "5f0c1f0e-9c7e-4b8b-8a51-0d8a4b7e3c11", Email: "caja@tienda.mx", StoreID: 7, Role: "cashier",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "5f0c1f0e-9c7e-4b8b-8a51-0d8a4b7e3c11", claims.UUID)
	assert.Equal(t, "caja@tienda.mx", claims.Email)
	assert.Equal(t, int64(7), claims.StoreID)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, pkgjwt.TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWT_UsaRS256(t *testing.T) {
	m := newManager(t)
	tok, err := m.Generate(pkgjwt.TokenInput{UserID: 1, StoreID: 1, Role: "admin"})
	require.NoError(t, err)

	parsed, _, err := gojwt.NewParser().ParseUnverified(tok, &pkgjwt.Claims{})
	require.NoError(t, err)
	assert.Equal(t, "RS256", parsed.Method.Alg())
}

func TestJWT_Expiracion(t *testing.T) {
	issuedAt := time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)
	base := newManager(t)
	tok, err := base.WithClock(func() time.Time { return issuedAt }).
		Generate(pkgjwt.TokenInput{UserID: 1, StoreID: 7, Role: "cashier"})
	require.NoError(t, err)

	// T + 23h59m: aún válido
	_, err = base.WithClock(func() time.Time { return issuedAt.Add(23*time.Hour + 59*time.Minute) }).Parse(tok)
	assert.NoError(t, err)

	// T + 24h01m: expirado
	_, err = base.WithClock(func() time.Time { return issuedAt.Add(24*time.Hour + time.Minute) }).Parse(tok)
	require.Error(t, err)
	assert.True(t, pkgjwt.IsExpired(err), "debe reportarse como expirado: %v", err)
}

func TestJWT_LlaveIncorrecta_RetornaError(t *testing.T) {
	m := newManager(t)
	tok, err := m.Generate(pkgjwt.TokenInput{UserID: 1})
	require.NoError(t, err)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier, err := pkgjwt.NewManager(nil, &other.PublicKey, testIssuer)
	require.NoError(t, err)

	_, err = verifier.Parse(tok)
	assert.Error(t, err, "una llave pública distinta debe invalidar el token")
}

func TestJWT_RechazaHS256(t *testing.T) {
	m := newManager(t)
	claims := pkgjwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "1",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secreto"))
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err, "solo se aceptan tokens RS256")
}

func TestJWT_EmisorDistinto_RetornaError(t *testing.T) {
	key := rsaKey(t)
	other, err := pkgjwt.NewManager(key, nil, "otro-emisor")
	require.NoError(t, err)
	tok, err := other.Generate(pkgjwt.TokenInput{UserID: 1})
	require.NoError(t, err)

	_, err = newManager(t).Parse(tok)
	assert.Error(t, err)
}

func TestJWT_VerificadorSinLlavePrivada_NoFirma(t *testing.T) {
	key := rsaKey(t)
	verifier, err := pkgjwt.NewManager(nil, &key.PublicKey, testIssuer)
	require.NoError(t, err)

	_, err = verifier.Generate(pkgjwt.TokenInput{UserID: 1})
	assert.ErrorIs(t, err, pkgjwt.ErrNoPrivateKey)
}

func TestNewManager_SinLlaves(t *testing.T) {
	_, err := pkgjwt.NewManager(nil, nil, testIssuer)
	assert.ErrorIs(t, err, pkgjwt.ErrNoPublicKey)
}

func writeKeys(t *testing.T, key *rsa.PrivateKey, pub *rsa.PublicKey) (string, string) {
	t.Helper()
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o644))
	return privPath, pubPath
}

func TestLoadManager_DesdeArchivosPEM(t *testing.T) {
	key := rsaKey(t)
	privPath, pubPath := writeKeys(t, key, &key.PublicKey)

	m, err := pkgjwt.LoadManager(privPath, pubPath, testIssuer)
	require.NoError(t, err)

	tok, err := m.Generate(pkgjwt.TokenInput{UserID: 3, StoreID: 1, Role: "admin"})
	require.NoError(t, err)
	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	pubPEM, err := m.PublicKeyPEM()
	require.NoError(t, err)
	onDisk, err := os.ReadFile(pubPath)
	require.NoError(t, err)
	assert.Equal(t, string(onDisk), string(pubPEM))
}

func TestLoadManager_ParDeLlavesNoCorresponde(t *testing.T) {
	key := rsaKey(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPath, pubPath := writeKeys(t, key, &other.PublicKey)

	_, err = pkgjwt.LoadManager(privPath, pubPath, testIssuer)
	assert.Error(t, err)
}

func TestLoadManager_ArchivoInexistente(t *testing.T) {
	_, err := pkgjwt.LoadManager("/no/existe/private.pem", "/no/existe/public.pem", testIssuer)
	assert.Error(t, err)
}
