package jwt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL vigencia fija de los tokens de acceso. No hay refresh ni revocación.
const TokenTTL = 24 * time.Hour

var (
	ErrNoPrivateKey = errors.New("jwt: llave privada no configurada")
	ErrNoPublicKey  = errors.New("jwt: llave pública no configurada")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Claims payload firmado: sub (id numérico del usuario), uuid, email, store_id y role.
type Claims struct {
	jwt.RegisteredClaims
	UUID    string `json:"uuid"`
	Email   string `json:"email"`
	StoreID int64  `json:"store_id"`
	Role    string `json:"role"`
}

// UserID devuelve el sub como entero.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenInput datos del principal autenticado y su contexto de tienda activo.
type TokenInput struct {
	UserID  int64
	UUID    string
	Email   string
	StoreID int64
	Role    string
}

// Manager firma (RS256, llave privada) y verifica (llave pública) tokens.
// Es de solo lectura después de construido; se comparte entre requests concurrentes.
type Manager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// NewManager construye el manager. privateKey puede ser nil para un verificador puro.
func NewManager(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) (*Manager, error) {
	if publicKey == nil && privateKey != nil {
		publicKey = &privateKey.PublicKey
	}
	if publicKey == nil {
		return nil, ErrNoPublicKey
	}
	return &Manager{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		ttl:        TokenTTL,
		now:        time.Now,
	}, nil
}

// LoadManager lee el par de llaves PEM desde disco (PKCS#1 o PKCS#8 para la privada, PKIX o PKCS#1 para la pública).
func LoadManager(privateKeyPath, publicKeyPath, issuer string) (*Manager, error) {
	privPEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("leer llave privada: %w", err)
	}
	pubPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("leer llave pública: %w", err)
	}
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("parsear llave privada: %w", err)
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("parsear llave pública: %w", err)
	}
	if !priv.PublicKey.Equal(pub) {
		return nil, errors.New("jwt: la llave pública no corresponde a la llave privada")
	}
	return NewManager(priv, pub, issuer)
}

// WithClock reemplaza el reloj usado para iat/exp y para validar expiración.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	cp := *m
	cp.now = now
	return &cp
}

// Generate firma un token con vigencia TokenTTL desde ahora.
func (m *Manager) Generate(in TokenInput) (string, error) {
	if m.privateKey == nil {
		return "", ErrNoPrivateKey
	}
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(in.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UUID:    in.UUID,
		Email:   in.Email,
		StoreID: in.StoreID,
		Role:    in.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(m.privateKey)
	if err != nil {
		return "", fmt.Errorf("firmar token: %w", err)
	}
	return signed, nil
}

// Parse valida firma, algoritmo (solo RS256), emisor y expiración, y devuelve los claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// PublicKeyPEM serializa la llave de verificación (PKIX) para publicarla.
func (m *Manager) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(m.publicKey)
	if err != nil {
		return nil, fmt.Errorf("serializar llave pública: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// IsExpired indica si el error de Parse se debe a un token vencido.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
