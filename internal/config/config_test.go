package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, RepositoryMemory, cfg.Repository)
	assert.Equal(t, "data", cfg.DataPath)
	assert.Equal(t, 16, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SeedUsers)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	env := "REPOSITORY=database\nPAGE_SIZE=8\nJWT_SECRET=from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SEED_USERS", "false")

	cfg, err := Load(newViper(dir))
	require.NoError(t, err)

	assert.Equal(t, RepositoryDatabase, cfg.Repository)
	assert.Equal(t, 8, cfg.PageSize)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.False(t, cfg.SeedUsers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Repository: "Memory", PageSize: 16, JWTSecret: "s"}, false},
		{"unknown repository", Config{Repository: "redis", PageSize: 16, JWTSecret: "s"}, true},
		{"zero page size", Config{Repository: "memory", JWTSecret: "s"}, true},
		{"empty secret", Config{Repository: "memory", PageSize: 16}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
