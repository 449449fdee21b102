// Package schema holds the advisory registry of known log files and
// their expected field lists. The registry documents what a session is
// expected to contain and drives the configured-file pass of session
// loading; it never rejects anything. Files and fields outside it are
// parsed through the same generic path.
package schema

import "sort"

// Registry maps (category, filename) to an ordered field list. Build
// one explicitly (usually from Defaults) and pass it to loaders; there
// is deliberately no package-level instance to mutate.
type Registry struct {
	categories map[string]map[string][]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{categories: make(map[string]map[string][]string)}
}

// Register upserts the expected fields for a file, creating the
// category if absent. Registering the same file twice replaces the
// previous field list.
func (r *Registry) Register(category, filename string, fields []string) {
	files, ok := r.categories[category]
	if !ok {
		files = make(map[string][]string)
		r.categories[category] = files
	}
	files[filename] = append([]string(nil), fields...)
}

// ExpectedFields returns the registered field list for a file, or an
// empty list if the file is unregistered.
func (r *Registry) ExpectedFields(category, filename string) []string {
	fields := r.categories[category][filename]
	return append([]string(nil), fields...)
}

// Entry identifies one registered file.
type Entry struct {
	Category string
	Filename string
}

// Entries returns all registered (category, filename) pairs, sorted for
// deterministic iteration.
func (r *Registry) Entries() []Entry {
	var entries []Entry
	for category, files := range r.categories {
		for filename := range files {
			entries = append(entries, Entry{Category: category, Filename: filename})
		}
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Category != entries[b].Category {
			return entries[a].Category < entries[b].Category
		}
		return entries[a].Filename < entries[b].Filename
	})
	return entries
}
