package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
auth:
  jwt_secret: s3cret
email:
  dry_run: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "api", cfg.Server.BasePath)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "./uploads", cfg.Files.UploadDir)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_DurationsAndBasePath(t *testing.T) {
	path := writeConfig(t, `
server:
  base_path: /v1/
  environment: production
database:
  driver: memory
auth:
  jwt_secret: s3cret
  token_ttl: 24h
  otp_ttl: 90s
email:
  dry_run: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.Server.BasePath)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 90*time.Second, cfg.Auth.OTPTTL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
auth:
  jwt_secret: from-file
email:
  dry_run: true
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "service")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "service", cfg.Server.BasePath)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"missing secret": `
database:
  driver: memory
email:
  dry_run: true
`,
		"unknown driver": `
database:
  driver: sqlite
auth:
  jwt_secret: x
email:
  dry_run: true
`,
		"postgres without url": `
database:
  driver: postgres
auth:
  jwt_secret: x
email:
  dry_run: true
`,
		"smtp host required": `
database:
  driver: memory
auth:
  jwt_secret: x
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
