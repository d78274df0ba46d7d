package ingest

import (
	"bolg/internal/domain/content"
	domainerr "bolg/internal/domain/errors"
	"bytes"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var errInvalidFrontMatter = errors.New("invalid front matter")

var (
	slugPattern = regexp.MustCompile(`^\w+(-\w+)*$`)
	// a bare metadata block starts with a "key:" line
	keyLine = regexp.MustCompile(`^[A-Za-z_][\w-]*[ \t]*:`)
)

const ReservedSlug = "index"

// ParseFrontMatter splits raw into its metadata and Markdown body. The
// metadata is either a "---" fenced YAML block or a run of "key: value" lines
// ended by the first blank line. Files with neither return empty metadata and
// the whole text as body.
func ParseFrontMatter(raw []byte) (map[string]any, []byte, error) {
	meta := make(map[string]any)

	// 统一换行符
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))
	norm = bytes.TrimPrefix(norm, []byte("\ufeff"))
	norm = bytes.TrimLeft(norm, " \t\n")

	var yamlPart, bodyPart []byte
	switch {
	case bytes.HasPrefix(norm, []byte("---\n")) || bytes.Equal(bytes.TrimSpace(norm), []byte("---")):
		var err error
		yamlPart, bodyPart, err = splitFenced(norm)
		if err != nil {
			return nil, nil, err
		}
	case keyLine.Match(norm):
		if i := bytes.Index(norm, []byte("\n\n")); i >= 0 {
			yamlPart, bodyPart = norm[:i], norm[i+2:]
		} else {
			yamlPart = norm
		}
	default:
		return meta, norm, nil
	}

	if len(bytes.TrimSpace(yamlPart)) > 0 {
		if err := yaml.Unmarshal(yamlPart, &meta); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errInvalidFrontMatter, err)
		}
		if meta == nil {
			meta = make(map[string]any)
		}
	}
	return meta, bytes.TrimLeft(bodyPart, "\n"), nil
}

func splitFenced(norm []byte) ([]byte, []byte, error) {
	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if bytes.Equal(bytes.TrimSpace(norm), []byte(sep)) {
		return nil, nil, nil
	}
	rest := norm[len(sepLine):]

	// "---\n---\nbody": empty block
	if bytes.HasPrefix(rest, []byte(sepLine)) {
		return nil, rest[len(sepLine):], nil
	}
	if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	if bytes.HasSuffix(bytes.TrimRight(rest, "\n"), []byte("\n"+sep)) {
		trimmed := bytes.TrimRight(rest, "\n")
		return trimmed[:len(trimmed)-len("\n"+sep)], nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(rest), []byte(sep)) {
		return nil, nil, nil
	}
	return nil, nil, fmt.Errorf("%w: unterminated '---' block", errInvalidFrontMatter)
}

// ResolveSlug picks the entry slug from the `slug` field, or from the file
// name without its ".md" extension.
func ResolveSlug(meta map[string]any, name string) (string, error) {
	slug, ok := content.MetaString(meta, "slug")
	if !ok {
		slug = strings.TrimSuffix(name, ".md")
	}
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	return slug, nil
}

func ValidateSlug(slug string) error {
	if slug == "" || !slugPattern.MatchString(slug) {
		if hint := slugify(slug); hint != "" && slugPattern.MatchString(hint) && hint != ReservedSlug {
			return fmt.Errorf("%w (try %q)", domainerr.ErrInvalidSlug, hint)
		}
		return domainerr.ErrInvalidSlug
	}
	if slug == ReservedSlug {
		return domainerr.ErrReservedSlug
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"2006-01-02 15:04",
	time.DateTime,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseTime interprets a front-matter value as a point in time. YAML may
// already have decoded it to a time.Time; strings are tried against
// timeLayouts in the local zone.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

func slugify(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var out []rune
	lastDash := false

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			if 'A' <= r && r <= 'Z' {
				r = r + ('a' - 'A')
			}
			out = append(out, r)
			lastDash = false
		default:
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
