package validation

import "sort"

// Issues collects failure messages keyed by dotted field path such as
// "personal.email" or "academic.0.school".
type Issues map[string][]string

// Add records a message for path.
func (i Issues) Add(path, message string) {
	i[path] = append(i[path], message)
}

// Check applies rules to value and records the first failure under path.
// It reports whether the value passed.
func (i Issues) Check(path, value string, rules ...Rule) bool {
	result := Rules(value, rules...)
	if !result.Valid {
		i.Add(path, result.Message)
	}
	return result.Valid
}

// Empty reports whether no issues were recorded.
func (i Issues) Empty() bool { return len(i) == 0 }

// Paths returns the recorded paths in sorted order.
func (i Issues) Paths() []string {
	paths := make([]string, 0, len(i))
	for path := range i {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// First returns the first message recorded for path.
func (i Issues) First(path string) string {
	if messages := i[path]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// Clone returns a deep copy.
func (i Issues) Clone() Issues {
	if i == nil {
		return nil
	}
	out := make(Issues, len(i))
	for path, messages := range i {
		out[path] = append([]string(nil), messages...)
	}
	return out
}
