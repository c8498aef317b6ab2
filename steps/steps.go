// Package steps runs user-provided build scripts before and after a guide
// build. A step list lives on the rig options as a comma-joined string of
// "name | path" entries; paths resolve against the configured steps root.
package steps

import (
	"path/filepath"
	"strings"
)

// Step is one custom build step.
type Step struct {
	// Name is the display label. Entries without an explicit name use the
	// script's base name.
	Name string
	// Command is the script invocation, possibly with arguments. Relative
	// paths resolve against the runner's root directory.
	Command string
}

// ParseList splits a comma-joined step list of "name | command" entries.
// Empty entries are dropped.
func ParseList(raw string) []Step {
	var out []Step
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, command := entry, entry
		if i := strings.Index(entry, "|"); i >= 0 {
			name = strings.TrimSpace(entry[:i])
			command = strings.TrimSpace(entry[i+1:])
		}
		if command == "" {
			continue
		}
		if name == "" || name == command {
			name = strings.TrimSuffix(filepath.Base(firstField(command)), filepath.Ext(firstField(command)))
		}
		out = append(out, Step{Name: name, Command: command})
	}
	return out
}

// FormatList is the inverse of ParseList.
func FormatList(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.Name + " | " + s.Command
	}
	return strings.Join(parts, ",")
}

func firstField(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return command
	}
	return fields[0]
}
