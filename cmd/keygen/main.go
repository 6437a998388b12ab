// keygen genera el par de llaves RSA con el que se firman (privada) y verifican (pública) los tokens.
//
// Uso: go run ./cmd/keygen [directorio]
// Por defecto escribe keys/private.pem (PKCS#8) y keys/public.pem (PKIX).
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

const keyBits = 2048

func main() {
	dir := "keys"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}

	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar llave: %v\n", err)
		os.Exit(1)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Serializar llave privada: %v\n", err)
		os.Exit(1)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Serializar llave pública: %v\n", err)
		os.Exit(1)
	}

	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")
	if err := writePEM(privPath, "PRIVATE KEY", privDER, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", privPath, err)
		os.Exit(1)
	}
	if err := writePEM(pubPath, "PUBLIC KEY", pubDER, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", pubPath, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito: %s, %s\n", privPath, pubPath)
}

func writePEM(path, blockType string, der []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if err := pem.Encode(f, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
