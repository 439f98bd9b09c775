package configs

import (
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		DBUser:     "payroll",
		DBPassword: "p@ss:w/rd",
		DBHost:     "db.internal",
		DBPort:     "6543",
		DBName:     "bimbel",
		DBSSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.NotContains(t, dsn, "%!")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:6543", u.Host)
	assert.Equal(t, "/bimbel", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "bimbel", u.Query().Get("application_name"))
	assert.Equal(t, "-c statement_timeout=3000", u.Query().Get("options"))

	pc, err := pgconn.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pc.Host)
	assert.Equal(t, uint16(6543), pc.Port)
	assert.Equal(t, "payroll", pc.User)
	assert.Equal(t, "p@ss:w/rd", pc.Password)
	assert.Equal(t, "bimbel", pc.Database)
	assert.Equal(t, "-c statement_timeout=3000", pc.RuntimeParams["options"])
	assert.Equal(t, "bimbel", pc.RuntimeParams["application_name"])
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "n")
	t.Setenv("PAYROLL_PROOF_DIR", "/payroll/proofs/")
	// kosong = pakai default viper
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	cfg := Load()
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "payroll/proofs", cfg.ProofDir)
	assert.Contains(t, cfg.DSN(), "localhost:5432/n")
}
