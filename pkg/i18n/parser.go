package i18n

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseBundle decodes a YAML document of the form {lang: {key: value}}
// into flat, dot-joined keys per language.
func parseBundle(content []byte) (map[string]map[string]string, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(data) == 0 {
		return nil, errors.Join(ErrInvalidBundle, errors.New("no languages in document"))
	}

	result := make(map[string]map[string]string, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, errors.Join(ErrInvalidBundle,
				fmt.Errorf("language %q: expected map, got %T", lang, val))
		}
		flat := make(map[string]string)
		if err := flatten("", tree, flat); err != nil {
			return nil, errors.Join(ErrInvalidBundle, fmt.Errorf("language %q: %w", lang, err))
		}
		result[strings.ToLower(lang)] = flat
	}
	return result, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		case nil:
			// empty value: treated as missing
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return nil
}
