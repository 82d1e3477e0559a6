// Package ini parses an AWS shared-credentials file into a profile->field
// map. The low-level tokenizing is delegated to github.com/go-ini/ini; this
// package exists to translate its generic parse failures into the typed
// errors the rest of this module expects, and to expose the narrow
// profile/field shape the file-backed provider needs rather than a full INI
// document model.
package ini

import (
	"errors"
	"fmt"
	"strings"

	goini "github.com/go-ini/ini"
)

// ErrInvalidSyntax is returned when a line is neither a section header nor
// a key=value pair, nor blank, nor a comment.
var ErrInvalidSyntax = errors.New("invalid credential file syntax")

// Profiles maps profile name to field name to value.
type Profiles map[string]map[string]string

// Parse parses raw INI bytes into Profiles.
//
// Recognized syntax: "[section]" headers, "key = value" pairs (whitespace
// around "=" ignored), blank lines, and "#"/";"-prefixed comments. Anything
// else is ErrInvalidSyntax. Section order is irrelevant; a later duplicate
// key within the same section overwrites an earlier one.
func Parse(data []byte) (Profiles, error) {
	if err := validateLines(data); err != nil {
		return nil, err
	}

	cfg, err := goini.LoadSources(goini.LoadOptions{
		AllowBooleanKeys:         true,
		SkipUnrecognizableLines:  false,
		IgnoreInlineComment:      true,
		UnescapeValueDoubleQuotes: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSyntax, err)
	}

	profiles := make(Profiles, len(cfg.Sections()))
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == goini.DefaultSection && len(section.Keys()) == 0 {
			// go-ini always synthesizes an empty DEFAULT section when the
			// file has none; skip it so an unadorned file with only named
			// profiles does not surface a spurious "" profile.
			continue
		}
		fields := make(map[string]string, len(section.Keys()))
		for _, key := range section.Keys() {
			fields[key.Name()] = key.Value()
		}
		profiles[name] = fields
	}
	return profiles, nil
}

// validateLines enforces the spec's stricter syntax (a bare malformed line
// is a hard parse error) ahead of handing the bytes to go-ini, which by
// default is more permissive about stray lines.
func validateLines(data []byte) error {
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
		case strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		case strings.Contains(line, "="):
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSyntax, raw)
		}
	}
	return nil
}
