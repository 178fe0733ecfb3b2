// Package completion builds editor autocompletion entries from helper definitions.
package completion

import (
	"strings"

	"github.com/robbyt/go-polyhelpers/platform/helper"
)

// CallSuffix is appended to a helper name to form the call completion.
const CallSuffix = "("

// Entries returns the de-duplicated completion strings for defs, in first-seen
// order. Each named definition contributes its name and the name followed by
// CallSuffix; a name that already ends with CallSuffix contributes only itself.
func Entries(defs []helper.Definition) []string {
	seen := make(map[string]struct{}, len(defs)*2)
	entries := make([]string, 0, len(defs)*2)

	add := func(entry string) {
		if _, ok := seen[entry]; ok {
			return
		}
		seen[entry] = struct{}{}
		entries = append(entries, entry)
	}

	for _, def := range defs {
		if !def.Valid() {
			continue
		}
		for _, entry := range ForName(def.TrimmedName()) {
			add(entry)
		}
	}
	return entries
}

// ForName returns the completion strings for a single helper name.
func ForName(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if strings.HasSuffix(name, CallSuffix) {
		return []string{name}
	}
	return []string{name, name + CallSuffix}
}
