// Package config binds CLI flags, environment variables, and an optional
// config file into the options each subsystem (symbolic, slicer, feature)
// needs, using Viper the way weiihann/chunk-analysis pairs cobra+viper for
// exactly this purpose.
package config

import (
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/purs3lab/arbitrar/feature"
	"github.com/purs3lab/arbitrar/slicer"
	"github.com/purs3lab/arbitrar/symbolic"
)

// Config is the fully-resolved set of options for one pipeline run.
type Config struct {
	TracesDir   string
	FeaturesDir string
	Verbose     bool

	Slicer   slicer.Options
	Symbolic symbolic.Options
	Feature  feature.Options
}

// New builds a Config from v, falling back to each subsystem's own
// defaults for anything left unset — mirroring the original's
// clap-derived #[derive(Default)] Options structs.
func New(v *viper.Viper) (Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}
	cfg := Config{
		TracesDir:   v.GetString("traces-dir"),
		FeaturesDir: v.GetString("features-dir"),
		Verbose:     v.GetBool("verbose"),
		Slicer:      slicer.DefaultOptions(),
		Symbolic:    symbolic.DefaultOptions(),
		Feature:     feature.DefaultOptions(),
	}

	if d := v.GetInt("slicer.depth"); d > 0 {
		cfg.Slicer.Depth = d
	}
	cfg.Slicer.UseBatch = v.GetBool("slicer.use-batch")
	if bs := v.GetInt("slicer.batch-size"); bs > 0 {
		cfg.Slicer.BatchSize = bs
	}
	if pat := v.GetString("slicer.target-include"); pat != "" {
		re, err := regexp.Compile(pat)
		if err != nil {
			return Config{}, err
		}
		cfg.Slicer.TargetInclude = re
	}
	if pat := v.GetString("slicer.target-exclude"); pat != "" {
		re, err := regexp.Compile(pat)
		if err != nil {
			return Config{}, err
		}
		cfg.Slicer.TargetExclude = re
	}
	if pat := v.GetString("slicer.entry-filter"); pat != "" {
		re, err := regexp.Compile(pat)
		if err != nil {
			return Config{}, err
		}
		cfg.Slicer.EntryFilter = re
	}

	if n := v.GetInt("symbolic.max-trace-per-slice"); n > 0 {
		cfg.Symbolic.MaxTracePerSlice = n
	}
	if n := v.GetInt("symbolic.max-explored-trace-per-slice"); n > 0 {
		cfg.Symbolic.MaxExploredTracePerSlice = n
	}
	if n := v.GetInt("symbolic.max-node-per-trace"); n > 0 {
		cfg.Symbolic.MaxNodePerTrace = n
	}
	cfg.Symbolic.NoTraceReduction = v.GetBool("symbolic.no-trace-reduction")
	cfg.Symbolic.UseSerial = v.GetBool("symbolic.use-serial")

	if n := v.GetInt("feature.causality-dictionary-size"); n > 0 {
		cfg.Feature.CausalityDictionarySize = n
	}
	if n := v.GetInt("feature.num-arguments"); n > 0 {
		cfg.Feature.NumArguments = n
	}

	return cfg, nil
}

// BindEnv registers the ARBITRAR_* environment variable prefix, matching
// the ambient-config convention used by weiihann/chunk-analysis.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("arbitrar")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}
