package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-scholarform/pkg/model"
)

// ErrorMapping splits validation issues into field-level and form-level
// messages keyed by the dotted field paths used throughout the render
// pipeline.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapIssues normalises validation issues (dotted paths, JSON pointers such as
// "/personal/email" or bracketed indices such as "academic[0].school") into
// the dotted paths renderers understand. Paths that do not resolve to a field
// or a repeated section of form become form-level messages so nothing is
// lost.
func MapIssues(form model.FormModel, issues map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	for rawPath, messages := range issues {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		path, ok := resolvePath(form, rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolvePath(form model.FormModel, raw string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}

	sec, ok := form.Section(segments[0])
	if !ok {
		return "", false
	}

	switch {
	case sec.Repeated && len(segments) == 1:
		return sec.Name, true
	case sec.Repeated && len(segments) == 3:
		index, err := strconv.Atoi(segments[1])
		if err != nil || index < 0 {
			return "", false
		}
		if _, ok := sec.Field(segments[2]); !ok {
			return "", false
		}
		return strings.Join(segments, "."), true
	case !sec.Repeated && len(segments) == 2:
		if _, ok := sec.Field(segments[1]); !ok {
			return "", false
		}
		return strings.Join(segments, "."), true
	default:
		return "", false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":   {},
		"values": {},
		"data":   {},
	}
	for len(segments) > 0 {
		if _, ok := wrappers[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
