package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/sci/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is a mapping from flag names to values:
//   - Keys may use hyphens or underscores (log-level or log_level)
//   - Nested mappings join their keys with a hyphen, so a "log" mapping
//     with a "level" key sets --log-level
//   - Sequences set repeatable flags such as --source
//   - Numbers are passed to kong as strings
//
// Example config file:
//
//	mode: deg
//	precision: 12
//	log:
//	  level: debug
//	  pretty: false
//
// An empty or malformed file is logged and ignored. Command-line flags
// override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).Decode(&doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring malformed configuration",
					slog.String("error", err.Error()))
			}

			return config{}, nil
		}

		cfg := make(config, len(doc))
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for flattened YAML documents.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[configKey(flag.Name)]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// configKey normalizes a flag or document key.
func configKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// flatten stores every leaf of m in r under its hyphen-joined key path.
func (r config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := configKey(k)
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := v.(map[string]any); ok {
			r.flatten(key, sub)

			continue
		}

		r[key] = configScalar(v)
	}
}

// configScalar converts decoded YAML values to the forms kong decodes.
func configScalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		seq := make([]any, len(n))
		for i, e := range n {
			seq[i] = configScalar(e)
		}

		return seq
	case nil, bool, string:
		return n
	default:
		return fmt.Sprint(n)
	}
}
