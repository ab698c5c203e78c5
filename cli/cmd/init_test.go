package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/sci/session"
)

type initTestCLI struct {
	Mode      session.Mode `default:"rad"`
	Precision int          `default:"15"`
	Plain     bool
	Label     string
	Source    []string
	PprofMode string `default:"cpu" name:"pprof-mode"`
	Secret    string `default:"x"   hidden:""`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initTestCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--mode=deg", "--precision=8", "--source=a,b")

			err := (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want ErrWriteConfig", err)
				}

				return
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, data)
			}

			want := map[string]string{
				"mode":      "deg",
				"precision": "8",
				"plain":     "false",
				"source":    "[a b]",
			}

			for k, v := range want {
				if s := fmt.Sprint(got[k]); s != v {
					t.Errorf("config[%q] = %s, want %s", k, s, v)
				}
			}

			for _, k := range []string{"help", "label", "pprof-mode", "secret"} {
				if _, ok := got[k]; ok {
					t.Errorf("config contains %q:\n%s", k, data)
				}
			}
		})
	}
}

func TestInitRun_NoConfigPath(t *testing.T) {
	err := (&Init{}).Run(context.Background())
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("Init.Run() error = %v, want ErrNoConfig", err)
	}
}

func TestInitRun_InvalidPath(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "missing", "config.yaml")

	err := (&Init{}).Run(initContext(t, confPath))
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Init.Run() error = %v, want ErrWriteConfig", err)
	}
}

func TestConfigValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "<nil>"},
		{"bool", true, "true"},
		{"empty string", "", "<nil>"},
		{"string", "deg", "deg"},
		{"int", 12, "12"},
		{"uint", uint8(3), "3"},
		{"float", 1.5, "1.5"},
		{"text marshaler", session.ModeDeg, "deg"},
		{"empty slice", []string{}, "<nil>"},
		{"slice", []int{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmt.Sprint(configValue(tt.in)); got != tt.want {
				t.Errorf("configValue(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
