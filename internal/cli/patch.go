package cli

import (
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/Makepad-fr/taskboard/internal/errors"
	"github.com/Makepad-fr/taskboard/internal/store"
)

// decodePatch turns key=value arguments into a store.Patch. Values are weakly
// typed, so points=3 decodes to a float. points=none (or -) clears the estimate.
func decodePatch(pairs []string) (store.Patch, error) {
	var patch store.Patch

	raw := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.ToLower(strings.TrimSpace(k))
		if !ok || k == "" {
			return patch, errors.Errorf("expected key=value, got %q", pair)
		}
		if _, dup := raw[k]; dup {
			return patch, errors.Errorf("%s given twice", k)
		}

		switch k {
		case "points":
			if v == "" || v == "-" || strings.EqualFold(v, "none") {
				patch.ClearPoints = true
				raw[k] = nil
				continue
			}
		case "status":
			raw[k] = statusArg(v)
			continue
		case "priority":
			raw[k] = priorityArg(v)
			continue
		}
		raw[k] = v
	}

	if patch.ClearPoints {
		delete(raw, "points")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &patch,
	})
	if err != nil {
		return patch, errors.WithStackTrace(err)
	}
	if err := decoder.Decode(raw); err != nil {
		return patch, errors.WithStackTrace(flattenDecodeError(err))
	}
	return patch, nil
}

// flattenDecodeError joins mapstructure's bulleted report into one line.
func flattenDecodeError(err error) error {
	var decodeErr *mapstructure.Error
	if !errors.As(err, &decodeErr) {
		return err
	}

	msgs := make([]string, 0, len(decodeErr.Errors))
	for _, msg := range decodeErr.Errors {
		if keys, ok := strings.CutPrefix(msg, "'' has invalid keys: "); ok {
			msg = "unknown key " + keys
			if strings.Contains(keys, ",") {
				msg = "unknown keys " + keys
			}
		}
		msgs = append(msgs, msg)
	}
	return errors.New(strings.Join(msgs, "; "))
}
