package cmd

import (
	"os"
	"path/filepath"
	"strings"
)

// CLI is the root command tree parsed by Kong.
type CLI struct {
	Config string `help:"Configuration file (json, yaml or toml); flags and env override it" env:"PACKETGEN_CONFIG"`
	Log    struct {
		Level string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"PACKETGEN_LOG_LEVEL"`
	} `embed:"" prefix:"log-"`

	Generate Generate `cmd:"" default:"withargs" help:"Generate TypeScript packet classes"`
}

const configBaseName = "packetgen"

// ConfigCandidatePaths lists configuration files per format in priority order.
// An explicit userPath is routed to the loader matching its extension and put
// first.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}
	jsonPaths = append(jsonPaths, configBaseName+".json")
	yamlPaths = append(yamlPaths, configBaseName+".yaml", configBaseName+".yml")
	tomlPaths = append(tomlPaths, configBaseName+".toml")
	return jsonPaths, yamlPaths, tomlPaths
}

// FindUserConfig pulls --config out of args before Kong runs, so the file can
// be registered as a configuration source. PACKETGEN_CONFIG is the fallback.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("PACKETGEN_CONFIG")
}
