package html

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/render"
)

type fieldView struct {
	ID          string   `json:"id"`
	Path        string   `json:"path"`
	Label       string   `json:"label"`
	InputType   string   `json:"inputType"`
	Placeholder string   `json:"placeholder,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	MaxWords    int      `json:"maxWords,omitempty"`
	Value       string   `json:"value"`
	Checked     bool     `json:"checked"`
	Errors      []string `json:"errors,omitempty"`
}

type entryView struct {
	Index  int      `json:"index"`
	Fields []string `json:"fields"`
}

type sectionView struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Repeated    bool        `json:"repeated"`
	AddLabel    string      `json:"addLabel,omitempty"`
	Errors      []string    `json:"errors,omitempty"`
	Fields      []string    `json:"fields,omitempty"`
	Entries     []entryView `json:"entries,omitempty"`
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func newFieldView(field model.Field, path string, opts render.RenderOptions) fieldView {
	value := opts.Values[path]
	view := fieldView{
		ID:          controlID(path),
		Path:        path,
		Label:       field.Label,
		InputType:   inputType(field),
		Placeholder: field.Placeholder,
		Description: field.Description,
		Required:    field.Required,
		MaxWords:    field.MaxWords,
		Errors:      opts.Errors[path],
	}
	if field.Type == model.FieldTypeBoolean {
		view.Checked = flag(value)
		return view
	}
	view.Value = text(value)
	return view
}

// entryCount is the number of entries drawn for a repeated section: the
// posted count, never fewer than the section minimum.
func entryCount(section model.Section, opts render.RenderOptions) int {
	count := opts.Entries[section.Name]
	if count < section.MinEntries {
		count = section.MinEntries
	}
	return count
}

func entryPath(section string, index int, field string) string {
	return section + "." + strconv.Itoa(index) + "." + field
}

func inputType(field model.Field) string {
	if kind := strings.TrimSpace(field.Metadata["inputType"]); kind != "" {
		return kind
	}
	if field.Type == model.FieldTypeBoolean {
		return "checkbox"
	}
	return "text"
}

func controlID(path string) string {
	return "sf-" + strings.ReplaceAll(path, ".", "-")
}

func cssVars(vars map[string]string) []cssVar {
	if len(vars) == 0 {
		return nil
	}
	out := make([]cssVar, 0, len(vars))
	for name, value := range vars {
		out = append(out, cssVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "on"
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func flag(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1", "yes":
			return true
		}
	}
	return false
}
