package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shears/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{
			name:   "valid level: debug",
			level:  "debug",
			format: "console",
		},
		{
			name:   "valid level: DEBUG (case insensitive)",
			level:  "DEBUG",
			format: "console",
		},
		{
			name:   "valid level: info",
			level:  "info",
			format: "console",
		},
		{
			name:   "valid level: warn",
			level:  "warn",
			format: "json",
		},
		{
			name:   "valid level: error",
			level:  "error",
			format: "json",
		},
		{
			name:    "invalid level",
			level:   "verbose",
			format:  "console",
			wantErr: true,
		},
		{
			name:    "empty level",
			level:   "",
			format:  "console",
			wantErr: true,
		},
		{
			name:    "invalid format",
			level:   "info",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{
				Level:  tt.level,
				Format: tt.format,
			}

			logger, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, logger).NotNil()
		})
	}
}
