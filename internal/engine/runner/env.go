package runner

import (
	"maps"
	"os"
	"slices"
	"strings"
)

func processEnviron() []string {
	return os.Environ()
}

// mergeEnv combines layers into one map. Later layers take precedence.
func mergeEnv(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}
	return merged
}

// envMap parses "KEY=VALUE" pairs. Entries without a key are dropped.
func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		if k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

// environList renders env as sorted "KEY=VALUE" pairs.
func environList(env map[string]string) []string {
	keys := slices.Sorted(maps.Keys(env))
	list := make([]string, len(keys))
	for i, k := range keys {
		list[i] = k + "=" + env[k]
	}
	return list
}
