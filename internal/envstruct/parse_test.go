package envstruct_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/macrofit/internal/envstruct"
)

func TestPopulate(t *testing.T) {
	unset := func(_ string) (string, bool) { return "", false }

	type addrConfig struct {
		Addr string `env:"MACROFIT_ADDR"`
	}
	type defaultsConfig struct {
		Addr    string `env:"MACROFIT_ADDR" envDefault:"localhost:8081"`
		Secure  bool   `env:"MACROFIT_SECURE_COOKIES" envDefault:"true"`
		Seed    int64  `env:"MACROFIT_JITTER_SEED" envDefault:""`
		Ignored string
	}
	type floatConfig struct {
		Ratio float64 `env:"RATIO" envDefault:"0.5"`
	}

	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         addrConfig{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "missing without default",
			v:         &addrConfig{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name:      "value from environment",
			v:         &addrConfig{},
			lookupEnv: func(_ string) (string, bool) { return "localhost:0", true },
			want:      &addrConfig{Addr: "localhost:0"},
		},
		{
			name:      "defaults for every supported kind",
			v:         &defaultsConfig{},
			lookupEnv: unset,
			want:      &defaultsConfig{Addr: "localhost:8081", Secure: true, Seed: 0, Ignored: ""},
		},
		{
			name: "environment overrides defaults",
			v:    &defaultsConfig{},
			lookupEnv: func(key string) (string, bool) {
				switch key {
				case "MACROFIT_SECURE_COOKIES":
					return "false", true
				case "MACROFIT_JITTER_SEED":
					return "42", true
				default:
					return strings.ToLower(key), true
				}
			},
			want: &defaultsConfig{Addr: "macrofit_addr", Secure: false, Seed: 42, Ignored: ""},
		},
		{
			name:      "unparseable integer",
			v:         &defaultsConfig{},
			lookupEnv: func(key string) (string, bool) { return "forty-two", key == "MACROFIT_JITTER_SEED" },
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "unsupported kind",
			v:         &floatConfig{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Populate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error = %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.v); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
