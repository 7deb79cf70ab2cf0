package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rtls-ctl/gwscan/internal/hwaddr"
	"github.com/rtls-ctl/gwscan/internal/report"
)

func TestParseRangeArg(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantStart string
		wantEnd   string
		wantLen   uint64
		wantErr   bool
	}{
		{name: "explicit range", arg: "10.0.0.1..10.0.0.20", wantStart: "10.0.0.1", wantEnd: "10.0.0.20", wantLen: 20},
		{name: "single address", arg: "10.0.0.7..10.0.0.7", wantStart: "10.0.0.7", wantEnd: "10.0.0.7", wantLen: 1},
		{name: "prefix", arg: "192.168.4.0/24", wantStart: "192.168.4.0", wantEnd: "192.168.4.255", wantLen: 256},
		{name: "unmasked prefix", arg: "192.168.4.77/30", wantStart: "192.168.4.76", wantEnd: "192.168.4.79", wantLen: 4},
		{name: "missing separator", arg: "10.0.0.1", wantErr: true},
		{name: "bad prefix", arg: "10.0.0.0/40", wantErr: true},
		{name: "ipv6 prefix", arg: "fe80::/64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := parseRangeArg(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRangeArg(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if rng.Start().String() != tt.wantStart || rng.End().String() != tt.wantEnd {
				t.Errorf("range = %s, want %s..%s", rng, tt.wantStart, tt.wantEnd)
			}
			if rng.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", rng.Len(), tt.wantLen)
			}
		})
	}
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "version: 1\nconcurrency: 64\nport: 8080\nrace_timeout: 2s\n")

	oldPath := configPath
	configPath = path
	t.Cleanup(func() { configPath = oldPath })

	cmd := &cobra.Command{Use: "gwscan"}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 512, "")
	cmd.Flags().IntVar(&port, "port", 80, "")
	cmd.Flags().DurationVar(&connectTimeout, "connect-timeout", 3*time.Second, "")
	cmd.Flags().DurationVar(&raceTimeout, "race-timeout", 3*time.Second, "")
	cmd.Flags().StringVar(&outputFormat, "format", "json", "")
	cmd.Flags().StringVar(&ouiDatabase, "oui-database", "", "")

	if err := cmd.Flags().Parse([]string{"-c", "16", "--format", "table"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want flag value 16", cfg.Concurrency)
	}
	if cfg.Format != report.FormatTable {
		t.Errorf("Format = %q, want flag value table", cfg.Format)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want file value 8080", cfg.Port)
	}
	if cfg.RaceTimeout != 2*time.Second {
		t.Errorf("RaceTimeout = %v, want file value 2s", cfg.RaceTimeout)
	}
	if cfg.ConnectTimeout != 3*time.Second {
		t.Errorf("ConnectTimeout = %v, want default 3s", cfg.ConnectTimeout)
	}
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	oldPath := configPath
	configPath = writeConfig(t, "version: 1\n")
	t.Cleanup(func() { configPath = oldPath })

	cmd := &cobra.Command{Use: "gwscan"}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 512, "")

	if err := cmd.Flags().Parse([]string{"-c", "0"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("loadConfig() should reject a concurrency of 0")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gwscan.yaml")
	t.Cleanup(func() {
		configPath = ""
		forceInit = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out.String(), "Wrote "+path) {
		t.Errorf("config init output = %q", out.String())
	}

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	if err := rootCmd.Execute(); err == nil {
		t.Error("config init should refuse to overwrite without --force")
	}

	out.Reset()
	rootCmd.SetArgs([]string{"config", "show", "--config", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"version: 1", "concurrency: 512", "race_timeout: 3s", "format: json"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show missing %q:\n%s", want, out.String())
		}
	}
}

func TestOpenVendors(t *testing.T) {
	logger := zap.NewNop()

	if v := openVendors("", logger); v != nil {
		t.Errorf("openVendors(\"\") = %#v, want nil", v)
	}
	if v := openVendors(filepath.Join(t.TempDir(), "missing.txt"), logger); v != nil {
		t.Errorf("openVendors(missing) = %#v, want nil", v)
	}

	path := filepath.Join(t.TempDir(), "oui.txt")
	data := "00-03-93   (hex)\t\tApple, Inc.\n000393     (base 16)\t\tApple, Inc.\n\t\t\t\tCupertino  CA  95014\n\t\t\t\tUS\n\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write oui.txt: %v", err)
	}
	v := openVendors(path, logger)
	if v == nil {
		t.Fatal("openVendors() = nil, want a database")
	}
	if got := v.Lookup(hwaddr.MustParse("00:03:93:12:34:56")); got != "Apple, Inc." {
		t.Errorf("Lookup() = %q, want Apple, Inc.", got)
	}
}
