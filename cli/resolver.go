package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/menugen/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files,
// such as the one written by the init command.
//
// Nested mappings are flattened by joining keys with "-", and underscores in
// keys are read as hyphens, so the following are equivalent:
//
//	log:
//	  level: debug
//
//	log_level: debug
//
//	log-level: debug
//
// Command-line flags override configuration values. A file that cannot be
// decoded is ignored with a warning.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).Decode(&doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring unreadable configuration file",
					slog.Any("error", err),
				)
			}

			return settings{}, nil
		}

		s := settings{}
		s.flatten("", doc)

		log.TraceContext(ctx, "configuration loaded", slog.Int("keys", len(s)))

		return s, nil
	}
}

// settings implements [kong.Resolver] over flattened configuration keys.
type settings map[string]any

// Validate implements [kong.Resolver].
func (settings) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (s settings) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := s[flag.Name]; ok {
		return v, nil
	}

	// nil lets kong fall back to defaults
	return nil, nil
}

func (s settings) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case nil:
			continue

		case map[string]any:
			// Map-typed flags read the mapping itself.
			s[key] = scalarMap(v)
			s.flatten(key, v)

		case []any:
			list := make([]any, 0, len(v))
			for _, e := range v {
				if e != nil {
					list = append(list, scalar(e))
				}
			}

			s[key] = list

		default:
			s[key] = scalar(v)
		}
	}
}

// scalar converts numbers to strings, which kong parses with the flag's own
// mapper.
func scalar(v any) any {
	switch v := v.(type) {
	case string, bool:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func scalarMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))

	for k, v := range m {
		if _, nested := v.(map[string]any); !nested && v != nil {
			out[k] = fmt.Sprint(v)
		}
	}

	return out
}
