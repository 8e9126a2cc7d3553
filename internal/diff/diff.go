// Package diff renders the dry-run preview of a substitution.
package diff

import (
	"strings"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"
)

// Options control how the preview is rendered.
//
// Lines are compared by position, not aligned: a substitution never adds or
// removes lines unless the pattern or substitute spans a newline, in which
// case everything after it shows as changed.
type Options struct {
	// Color wraps removed lines in red and added lines in green.
	Color     bool
	// Context is the number of unchanged lines shown around each change.
	Context   int
	// StrictEOL reports a lone trailing final newline difference as a change.
	// By default such differences are ignored.
	StrictEOL bool
}

// HasChanges reports whether the inputs differ.
func HasChanges(before, after string) bool { return before != after }

// equalIgnoringSingleTrailingFinalNL returns true if a and b are equal, or if they differ only by a single trailing final newline.
func equalIgnoringSingleTrailingFinalNL(a, b string) bool {
	if a == b {
		return true
	}
	if strings.HasSuffix(a, "\n") && !strings.HasSuffix(b, "\n") {
		return strings.TrimSuffix(a, "\n") == b
	}
	if strings.HasSuffix(b, "\n") && !strings.HasSuffix(a, "\n") {
		return strings.TrimSuffix(b, "\n") == a
	}
	return false
}

type painter struct {
	removed *color.Color
	added   *color.Color
	hunk    *color.Color
}

func newPainter(enabled bool) painter {
	p := painter{
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		hunk:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.removed, p.added, p.hunk} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Diff returns a human-readable preview and whether there were changes.
// Each group of nearby changed lines is introduced by an "@@ line N @@"
// header (1-based), followed by "-old"/"+new" pairs and up to opts.Context
// unchanged lines on either side. Empty sides of a pair are elided.
func Diff(before, after string, opts Options) (string, bool, error) {
	if !opts.StrictEOL && equalIgnoringSingleTrailingFinalNL(before, after) {
		return "", false, nil
	}
	if before == after {
		return "", false, nil
	}
	if opts.Context < 0 {
		return "", false, errors.Errorf("diff: negative context %d", opts.Context)
	}

	bl := strings.Split(before, "\n")
	al := strings.Split(after, "\n")
	n := max(len(bl), len(al))
	line := func(lines []string, i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return ""
	}

	var changed []int
	for i := 0; i < n; i++ {
		if line(bl, i) != line(al, i) {
			changed = append(changed, i)
		}
	}
	p := newPainter(opts.Color)
	var b strings.Builder
	b.WriteString("--- before\n")
	b.WriteString("+++ after\n")
	if len(changed) == 0 {
		// The sides differ only in trailing newlines.
		b.WriteString(p.hunk.Sprint("\\ trailing newlines differ"))
		b.WriteByte('\n')
		return b.String(), true, nil
	}

	// shown is the first index not yet printed.
	shown := 0
	for k := 0; k < len(changed); {
		start := max(changed[k]-opts.Context, shown)
		// Extend the hunk while the next change falls inside its trailing context.
		end := changed[k]
		for k+1 < len(changed) && changed[k+1]-end <= 2*opts.Context+1 {
			k++
			end = changed[k]
		}
		k++
		stop := min(end+opts.Context, n-1)

		b.WriteString(p.hunk.Sprintf("@@ line %d @@", start+1))
		b.WriteByte('\n')
		for i := start; i <= stop; i++ {
			br, ar := line(bl, i), line(al, i)
			if br == ar {
				b.WriteString(" " + br + "\n")
				continue
			}
			if br != "" {
				b.WriteString(p.removed.Sprint("-" + br))
				b.WriteByte('\n')
			}
			if ar != "" {
				b.WriteString(p.added.Sprint("+" + ar))
				b.WriteByte('\n')
			}
		}
		shown = stop + 1
	}
	return b.String(), true, nil
}
