package postgres

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource_VersionesConUpYDown(t *testing.T) {
	src, err := MigrationSource()
	require.NoError(t, err)
	defer src.Close()

	var versions []uint
	v, err := src.First()
	require.NoError(t, err)
	for {
		versions = append(versions, v)

		up, _, err := src.ReadUp(v)
		require.NoError(t, err, "falta up para %d", v)
		up.Close()
		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "falta down para %d", v)
		down.Close()

		next, err := src.Next(v)
		if err != nil {
			assert.ErrorIs(t, err, os.ErrNotExist)
			break
		}
		v = next
	}
	assert.Equal(t, []uint{1, 2, 3}, versions)
}

func TestMigrationSource_EsquemaCompleto(t *testing.T) {
	src, err := MigrationSource()
	require.NoError(t, err)
	defer src.Close()

	var all strings.Builder
	for _, v := range []uint{1, 2, 3} {
		r, _, err := src.ReadUp(v)
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		all.Write(b)
	}
	sql := all.String()

	for _, table := range []string{
		"users", "roles", "stores", "store_users", "products", "store_products",
		"sales", "sale_items", "payment_methods", "sale_payments", "cash_registers", "inventory_movements",
	} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, sql, "users_email_key")
	assert.Contains(t, sql, "UNIQUE (store_id, user_id)")
	assert.Contains(t, sql, "UNIQUE (store_id, product_id)")
	assert.Contains(t, sql, "(1, 'admin', 'Administrador')")
	assert.Contains(t, sql, "(2, 'cashier', 'Cajero')")
}

func TestMigrationSource_BorradoLogico(t *testing.T) {
	src, err := MigrationSource()
	require.NoError(t, err)
	defer src.Close()

	var all strings.Builder
	for _, v := range []uint{1, 2} {
		r, _, err := src.ReadUp(v)
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		all.Write(b)
	}

	for _, table := range []string{"users", "stores", "products", "store_products", "sales"} {
		body := tableBody(t, all.String(), table)
		assert.Contains(t, body, "deleted_at", "%s sin deleted_at", table)
	}
}

// tableBody devuelve las columnas del CREATE TABLE de table.
func tableBody(t *testing.T, sql, table string) string {
	t.Helper()
	header := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(sql, header)
	require.NotEqual(t, -1, start, "no existe la tabla %s", table)
	rest := sql[start+len(header):]
	end := strings.Index(rest, "\n);")
	require.NotEqual(t, -1, end, "CREATE TABLE %s sin cierre", table)
	return rest[:end]
}
