package config

import (
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.GormEngine == "" {
		t.Error("DB.GormEngine should not be empty")
	}

	if cfg.Webserver.Session.ExpiryTime == 0 {
		t.Error("Webserver.Session.ExpiryTime should not be 0")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DB: DB{GormEngine: "sqlite"},
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	testCases := []struct {
		name    string
		mutate  func(c Config) Config
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c Config) Config { return c },
		},
		{
			name: "zero port",
			mutate: func(c Config) Config {
				c.Webserver.Port = 0
				return c
			},
			wantErr: true,
		},
		{
			name: "empty url",
			mutate: func(c Config) Config {
				c.Webserver.URL = ""
				return c
			},
			wantErr: true,
		},
		{
			name: "missing gorm engine",
			mutate: func(c Config) Config {
				c.DB.GormEngine = ""
				return c
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.mutate(base))
			if tc.wantErr && err == nil {
				t.Error("validate() expected an error, got nil")
			}

			if !tc.wantErr && err != nil {
				t.Errorf("validate() unexpected error: %v", err)
			}
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{Title: "dump-test"}

	out, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if out == "" {
		t.Error("DumpConfig() should produce output")
	}

	jsonOut, err := DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if jsonOut == "" {
		t.Error("DumpConfigJSON() should produce output")
	}
}
