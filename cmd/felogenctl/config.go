package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	api "felogen/pkg/felogen"
)

// cliConfig is the JSON config file shape; every field can be overridden by
// an explicit flag on the command line.
type cliConfig struct {
	StoreKind string
	DBPath    string
	Seed      int64
}

func loadCLIConfig(path string) (cliConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cliConfig{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return cliConfig{}, err
	}

	var cfg cliConfig
	if v, ok := asString(raw["store"]); ok {
		cfg.StoreKind = v
	}
	if v, ok := asString(raw["db_path"]); ok {
		cfg.DBPath = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		cfg.Seed = v
	}
	return cfg, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

// clientFlags are the store/config flags shared by every command.
type clientFlags struct {
	configPath *string
	storeKind  *string
	dbPath     *string
	seed       *int64
}

func addClientFlags(fs *flag.FlagSet) *clientFlags {
	return &clientFlags{
		configPath: fs.String("config", "", "JSON config file"),
		storeKind:  fs.String("store", "", "store backend: memory|sqlite"),
		dbPath:     fs.String("db-path", "", "sqlite database path"),
		seed:       fs.Int64("seed", 0, "random seed (0 = clock)"),
	}
}

// resolveOptions merges the config file with explicit flag overrides.
func resolveOptions(fs *flag.FlagSet, flags *clientFlags) (api.Options, error) {
	var cfg cliConfig
	if *flags.configPath != "" {
		loaded, err := loadCLIConfig(*flags.configPath)
		if err != nil {
			return api.Options{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["store"] {
		cfg.StoreKind = *flags.storeKind
	}
	if set["db-path"] {
		cfg.DBPath = *flags.dbPath
	}
	if set["seed"] {
		cfg.Seed = *flags.seed
	}

	return api.Options{
		StoreKind: cfg.StoreKind,
		DBPath:    cfg.DBPath,
		Seed:      cfg.Seed,
	}, nil
}
