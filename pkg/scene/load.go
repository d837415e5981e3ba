package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/softrender/pkg/status"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file syntax.
type Format int

const (
	FormatINI Format = iota
	FormatTOML
	FormatYAML
)

// FormatFromPath picks a Format from a file extension. Anything that is not
// TOML or YAML is read as INI.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatINI
	}
}

// Load reads and validates the configuration at path, starting from
// Default. A leading ~ is expanded to the home directory.
//
// When a value fails to parse the returned Config still carries every other
// key, and the error carries status.ConfigWrongFormat.
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Default(), fmt.Errorf("expand %q: %w", path, status.InvalidValue)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return Default(), fmt.Errorf("open config %q: %v: %w", expanded, err, status.FileOpenFailed)
	}

	cfg, parseErr := Parse(f, FormatFromPath(expanded))
	if err := f.Close(); err != nil && parseErr == nil {
		return cfg, fmt.Errorf("close config %q: %v: %w", expanded, err, status.FileCloseFailed)
	}
	if parseErr != nil {
		return cfg, parseErr
	}
	return cfg, nil
}

// Parse reads a configuration in the given format, applies every key on top
// of Default and validates the result. Every key is applied even after a
// failure; the first failure is returned.
func Parse(r io.Reader, format Format) (Config, error) {
	cfg := Default()

	pairs, err := readPairs(r, format)
	if err != nil {
		return cfg, err
	}

	var first error
	for _, kv := range pairs {
		if err := cfg.Set(kv[0], kv[1]); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return cfg, first
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readPairs(r io.Reader, format Format) ([][2]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %v: %w", err, status.FileOpenFailed)
	}
	switch format {
	case FormatTOML:
		var doc map[string]map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode toml: %v: %w", err, status.ConfigWrongFormat)
		}
		return tablePairs(doc[Section])
	case FormatYAML:
		var doc map[string]map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %v: %w", err, status.ConfigWrongFormat)
		}
		return tablePairs(doc[Section])
	default:
		return iniPairs(data)
	}
}

func iniPairs(data []byte) ([][2]string, error) {
	// '#' starts a color value, not a comment.
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("decode ini: %v: %w", err, status.ConfigWrongFormat)
	}
	sec, err := f.GetSection(Section)
	if err != nil {
		return nil, nil
	}
	keys := sec.Keys()
	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k.Name(), k.String()})
	}
	return pairs, nil
}

// tablePairs flattens a decoded TOML or YAML table. Map order is not
// preserved by either decoder, so keys are sorted to keep the first
// reported error stable.
func tablePairs(table map[string]any) ([][2]string, error) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		v, err := scalarString(table[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		pairs = append(pairs, [2]string{k, v})
	}
	return pairs, nil
}

func scalarString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return formatFlag(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported value %v (%T): %w", v, v, status.ConfigWrongFormat)
}

// WriteINI writes c as an INI document Load accepts.
func (c Config) WriteINI(w io.Writer) error {
	f := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	sec, err := f.NewSection(Section)
	if err != nil {
		return fmt.Errorf("new section: %w", err)
	}
	for _, kv := range c.Pairs() {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("new key %s: %w", kv[0], err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write ini: %w", err)
	}
	return nil
}

// IsFormatError reports whether err came from a value that failed to parse.
func IsFormatError(err error) bool {
	return errors.Is(err, status.ConfigWrongFormat)
}
