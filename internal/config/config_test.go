package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNewFallsBackToPackageDefaults(t *testing.T) {
	v := viper.New()
	cfg, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Slicer.Depth != 1 || cfg.Slicer.BatchSize != 100 {
		t.Errorf("Slicer defaults = %+v, want Depth=1 BatchSize=100", cfg.Slicer)
	}
	if cfg.Symbolic.MaxTracePerSlice != 50 {
		t.Errorf("Symbolic.MaxTracePerSlice = %d, want 50", cfg.Symbolic.MaxTracePerSlice)
	}
	if cfg.Feature.CausalityDictionarySize != 32 {
		t.Errorf("Feature.CausalityDictionarySize = %d, want 32", cfg.Feature.CausalityDictionarySize)
	}
}

func TestNewOverridesFromViper(t *testing.T) {
	v := viper.New()
	v.Set("slicer.depth", 3)
	v.Set("slicer.target-include", "^mem")
	v.Set("symbolic.use-serial", true)
	v.Set("feature.num-arguments", 2)
	v.Set("traces-dir", "/tmp/traces")

	cfg, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Slicer.Depth != 3 {
		t.Errorf("Slicer.Depth = %d, want 3", cfg.Slicer.Depth)
	}
	if cfg.Slicer.TargetInclude == nil || !cfg.Slicer.TargetInclude.MatchString("memcpy") {
		t.Errorf("Slicer.TargetInclude = %v, want a pattern matching memcpy", cfg.Slicer.TargetInclude)
	}
	if !cfg.Symbolic.UseSerial {
		t.Error("Symbolic.UseSerial = false, want true")
	}
	if cfg.Feature.NumArguments != 2 {
		t.Errorf("Feature.NumArguments = %d, want 2", cfg.Feature.NumArguments)
	}
	if cfg.TracesDir != "/tmp/traces" {
		t.Errorf("TracesDir = %q, want /tmp/traces", cfg.TracesDir)
	}
}

func TestNewRejectsInvalidRegexp(t *testing.T) {
	v := viper.New()
	v.Set("slicer.target-include", "(unterminated")
	if _, err := New(v); err == nil {
		t.Fatal("New() with an invalid regexp should return an error")
	}
}

func TestBindEnvReadsArbitrarPrefixedVars(t *testing.T) {
	t.Setenv("ARBITRAR_VERBOSE", "true")
	v := viper.New()
	BindEnv(v)
	if !v.GetBool("verbose") {
		t.Error("expected ARBITRAR_VERBOSE=true to surface as verbose=true")
	}
}
