package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configFileEnvVar  = "METAROOT_CONFIG_FILE"
	testFileName      = "metaroot-test.yaml"
	defaultFileName   = "metaroot.yaml"
	maxParentSearch   = 4
	topLevelSchemaKey = "METAROOT"
	globalSectionKey  = "GLOBAL"
)

// envOverrides maps the four broker config keys to the METAROOT_-prefixed
// environment variables that override them at load time.
var envOverrides = map[string]string{
	KeyMQUser: "METAROOT_MQUSER",
	KeyMQPass: "METAROOT_MQPASS",
	KeyMQHost: "METAROOT_MQHOST",
	KeyMQPort: "METAROOT_MQPORT",
}

// Load discovers the configuration file, layers GLOBAL under roleKey, and
// applies the environment variable overrides.
func Load(roleKey string) (Config, error) {
	path, err := discover()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path, roleKey)
}

// LoadFile loads and layers the configuration from an explicit file path,
// bypassing discovery. Exposed separately so tests and the --config flag
// can point at a fixture directly.
func LoadFile(path, roleKey string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc map[string]map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	sections, ok := doc[topLevelSchemaKey]
	if !ok {
		return Config{}, fmt.Errorf("config: %s missing top-level %q key", path, topLevelSchemaKey)
	}

	merged := map[string]string{}
	var hooks []string

	if global, ok := sections[globalSectionKey]; ok {
		mergeSection(merged, &hooks, global)
	}
	applyEnvOverrides(merged)

	if roleKey != "" {
		role, ok := sections[roleKey]
		if !ok {
			return Config{}, fmt.Errorf("config: %s has no role section %q", path, roleKey)
		}
		mergeSection(merged, &hooks, role)
	}

	return Config{values: merged, hooks: hooks}, nil
}

func mergeSection(merged map[string]string, hooks *[]string, section map[string]any) {
	for k, v := range section {
		if k == KeyHooks {
			*hooks = toStringSlice(v)
			continue
		}
		merged[k] = fmt.Sprintf("%v", v)
	}
}

func toStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, fmt.Sprintf("%v", e))
	}
	return out
}

func applyEnvOverrides(merged map[string]string) {
	for key, envVar := range envOverrides {
		if v, ok := os.LookupEnv(envVar); ok {
			merged[key] = v
		}
	}
}

// discover implements the search order: explicit env var, then
// metaroot-test.yaml, then metaroot.yaml, in the cwd and up to four
// parent directories.
func discover() (string, error) {
	if p, ok := os.LookupEnv(configFileEnvVar); ok {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config: %s points at unreadable file %s: %w", configFileEnvVar, p, err)
		}
		return p, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: getwd: %w", err)
	}

	for i := 0; i <= maxParentSearch; i++ {
		for _, name := range []string{testFileName, defaultFileName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config: no %s or %s found in cwd or %d parent directories", testFileName, defaultFileName, maxParentSearch)
}
