package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "Task Manager Server", cfg.ServerName)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, ":8000", cfg.Address())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	// Set environment variables
	os.Setenv("PORT", "9000")
	os.Setenv("SERVER_NAME", "Staging Task Manager")
	os.Setenv("LOG_LEVEL", "DEBUG")
	os.Setenv("SHUTDOWN_TIMEOUT", "20s")
	os.Setenv("VERSION", "2.0.0-beta")

	defer func() {
		os.Clearenv()
	}()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "Staging Task Manager", cfg.ServerName)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "2.0.0-beta", cfg.Version)
	assert.Equal(t, ":9000", cfg.Address())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	// Set invalid environment variables
	os.Setenv("PORT", "not-a-number")
	os.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	defer func() {
		os.Clearenv()
	}()

	cfg, err := LoadConfig()

	// Should fall back to defaults and validate successfully
	assert.NilError(t, err)
	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidServerPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"port too low", "0"},
		{"port too high", "65536"},
		{"negative port", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("PORT", tt.port)
			defer os.Clearenv()

			cfg, err := LoadConfig()

			assert.Assert(t, cfg == nil)
			assert.Assert(t, err != nil)
			assert.Assert(t, strings.Contains(err.Error(), "invalid server port"))
		})
	}
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"invalid level", "INVALID"},
		{"numeric level", "123"},
		{"random string", "random"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("LOG_LEVEL", tt.logLevel)
			defer os.Clearenv()

			cfg, err := LoadConfig()

			assert.Assert(t, cfg == nil)
			assert.Assert(t, err != nil)
			assert.Assert(t, strings.Contains(err.Error(), "invalid log level"))
		})
	}
}

func TestLoadConfig_LogLevelNormalized(t *testing.T) {
	os.Clearenv()
	os.Setenv("LOG_LEVEL", "  debug ")
	defer os.Clearenv()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadConfig_InvalidShutdownTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
	}{
		{"zero timeout", "0s"},
		{"negative timeout", "-5s"},
		{"excessive timeout", "10m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("SHUTDOWN_TIMEOUT", tt.timeout)
			defer os.Clearenv()

			cfg, err := LoadConfig()

			assert.Assert(t, cfg == nil)
			assert.Assert(t, err != nil)
			assert.Assert(t, strings.Contains(err.Error(), "invalid shutdown timeout"))
		})
	}
}

func TestLoadConfig_EmptyServerName(t *testing.T) {
	os.Clearenv()
	os.Setenv("SERVER_NAME", "   ")
	defer os.Clearenv()

	cfg, err := LoadConfig()

	assert.Assert(t, cfg == nil)
	assert.Assert(t, err != nil)
	assert.Assert(t, strings.Contains(err.Error(), "server name cannot be empty"))
}
