package diff

import (
	"strings"
	"testing"
)

func TestHasChanges(t *testing.T) {
	if HasChanges("a", "a") {
		t.Fatalf("expected no changes")
	}
	if !HasChanges("a", "b") {
		t.Fatalf("expected changes")
	}
}

func TestDiff_NoChanges(t *testing.T) {
	out, changed, err := Diff("foo", "foo", Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if changed {
		t.Fatalf("expected unchanged")
	}
	if out != "" {
		t.Fatalf("expected empty diff, got %q", out)
	}
}

func TestDiff_SimpleChange(t *testing.T) {
	before := "foo\nbar"
	after := "foo\nbaz"
	out, changed, err := Diff(before, after, Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if !strings.Contains(out, "-bar") || !strings.Contains(out, "+baz") {
		t.Fatalf("diff missing expected lines:\n%s", out)
	}
}

func TestDiff_MultipleChanges(t *testing.T) {
	before := "one\ntwo\nthree"
	after := "ONE\ntwo\nTHREE"
	out, changed, err := Diff(before, after, Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if !strings.Contains(out, "-one") || !strings.Contains(out, "+ONE") {
		t.Fatalf("diff missing one->ONE: %s", out)
	}
	if !strings.Contains(out, "-three") || !strings.Contains(out, "+THREE") {
		t.Fatalf("diff missing three->THREE: %s", out)
	}
}

func TestDiff_Colorized(t *testing.T) {
	before := "a"
	after := "b"
	out, changed, err := Diff(before, after, Options{Color: true})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if !strings.Contains(out, "\x1b[31m-") || !strings.Contains(out, "\x1b[32m+") {
		t.Fatalf("expected ANSI colors, got: %q", out)
	}
}

func TestDiff_IncludesHeadersWhenChanged(t *testing.T) {
	out, changed, err := Diff("x", "y", Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if !strings.Contains(out, "--- before") || !strings.Contains(out, "+++ after") {
		t.Fatalf("missing diff headers:\n%s", out)
	}
}

func TestDiff_NoColor_HasNoANSI(t *testing.T) {
	out, changed, err := Diff("a", "b", Options{Color: false})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ANSI escapes: %q", out)
	}
}

func TestDiff_EmptyLineInsertion_ShowsOnlyAddedLine(t *testing.T) {
	before := "a\n\nc"
	after := "a\nb\nc"
	out, changed, err := Diff(before, after, Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if !strings.Contains(out, "+b") {
		t.Fatalf("expected +b line, got:\n%s", out)
	}
	// Current implementation does not render a '-' for empty removed line; document behavior.
	if strings.Contains(out, "-\n") {
		t.Fatalf("did not expect explicit deletion of empty line")
	}
}

func TestDiff_TrailingNewlineDifference_Ignored(t *testing.T) {
	// Document current behavior: trailing newline-only changes are ignored.
	out, changed, err := Diff("a", "a\n", Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if changed {
		t.Fatalf("trailing newline difference should be ignored; got diff:\n%s", out)
	}
}

func TestDiff_ZeroContext_OnlyChangedLines(t *testing.T) {
	before := "foo\nbar\nbaz"
	after := "foo\nBAR\nbaz"
	out, changed, err := Diff(before, after, Options{})
	if err != nil || !changed {
		t.Fatalf("err=%v changed=%v", err, changed)
	}
	want := "--- before\n+++ after\n@@ line 2 @@\n-bar\n+BAR\n"
	if out != want {
		t.Fatalf("got:\n%q\nwant:\n%q", out, want)
	}
}

func TestDiff_ContextLinesAroundChange(t *testing.T) {
	before := "1\n2\n3\n4\n5\n6\n7"
	after := "1\n2\n3\nFOUR\n5\n6\n7"
	out, changed, err := Diff(before, after, Options{Context: 1})
	if err != nil || !changed {
		t.Fatalf("err=%v changed=%v", err, changed)
	}
	want := "--- before\n+++ after\n@@ line 3 @@\n 3\n-4\n+FOUR\n 5\n"
	if out != want {
		t.Fatalf("got:\n%q\nwant:\n%q", out, want)
	}
}

func TestDiff_NearbyChangesShareHunk(t *testing.T) {
	before := "a\nb\nc\nd\ne\nf\ng\nh\ni"
	after := "A\nb\nC\nd\ne\nf\ng\nh\nI"
	out, _, err := Diff(before, after, Options{Context: 1})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := strings.Count(out, "@@ line"); got != 2 {
		t.Fatalf("expected 2 hunks, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "@@ line 1 @@\n-a\n+A\n b\n-c\n+C\n d\n") {
		t.Fatalf("first hunk wrong:\n%s", out)
	}
	if !strings.Contains(out, "@@ line 8 @@\n h\n-i\n+I\n") {
		t.Fatalf("second hunk wrong:\n%s", out)
	}
}

func TestDiff_NegativeContext(t *testing.T) {
	if _, _, err := Diff("a", "b", Options{Context: -1}); err == nil {
		t.Fatalf("expected error for negative context")
	}
}

func TestDiff_StrictEOL_ReportsTrailingNewline(t *testing.T) {
	_, changed, err := Diff("a", "a\n", Options{StrictEOL: true})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatalf("expected change with StrictEOL")
	}
}
