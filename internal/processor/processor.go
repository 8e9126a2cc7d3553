// Package processor applies a substitute to file contents in memory.
package processor

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"findreplace/internal/substitute"
)

// ErrInvalidPattern matches every *PatternError.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a pattern that does not compile as a regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

func (e *PatternError) Is(target error) bool { return target == ErrInvalidPattern }

// TextError reports a file whose content is not text.
type TextError struct {
	Path   string
	Reason string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Result is the outcome of one substitution over a file's contents.
type Result struct {
	Before       string
	After        string
	Matches      int
	Replacements int
	Changed      bool
}

func unchanged(contents string) Result {
	return Result{Before: contents, After: contents}
}

// ReadText reads the whole file at path. Content that is not valid UTF-8 is
// rejected with a *TextError; NUL and other control bytes are ordinary text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errors.WithStack(&TextError{Path: path, Reason: "not valid UTF-8"})
	}
	return string(data), nil
}

// SubstituteLiteral replaces every occurrence of pattern, taken as plain
// text, with repl. An empty pattern matches before every rune and at the end,
// so repl is inserted around each character.
func SubstituteLiteral(contents, pattern, repl string) Result {
	matches := strings.Count(contents, pattern)
	if matches == 0 {
		return unchanged(contents)
	}
	after := strings.ReplaceAll(contents, pattern, repl)
	return Result{
		Before:       contents,
		After:        after,
		Matches:      matches,
		Replacements: matches,
		Changed:      contents != after,
	}
}

// SubstituteMapping compiles pattern as a regular expression and rewrites
// each match with m.
//
// Matches are found in the original contents. For each matched token the
// rewritten form replaces every occurrence of that token anywhere in the
// accumulated result, not only at the match position, so repeated tokens
// are rewritten together.
func SubstituteMapping(contents, pattern string, m *substitute.Map) (Result, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Result{}, errors.WithStack(&PatternError{Pattern: pattern, Err: err})
	}

	tokens := re.FindAllString(contents, -1)
	res := Result{Before: contents, Matches: len(tokens)}
	after := contents
	for _, tok := range tokens {
		rewritten := m.Rewrite(tok)
		if rewritten == tok {
			continue
		}
		n := strings.Count(after, tok)
		if n == 0 {
			// An earlier token's rewrite already consumed every occurrence.
			continue
		}
		after = strings.ReplaceAll(after, tok, rewritten)
		res.Replacements += n
	}
	res.After = after
	res.Changed = contents != after
	return res, nil
}

// Apply substitutes sub into contents: literally for a literal substitute,
// per regex match for a mapping.
func Apply(ctx context.Context, contents, pattern string, sub substitute.Substitute) (Result, error) {
	logger := zerolog.Ctx(ctx)

	var (
		res Result
		err error
	)
	switch sub.Kind {
	case substitute.Mapping:
		m := sub.Map
		if m == nil {
			m = substitute.NewMap()
		}
		res, err = SubstituteMapping(contents, pattern, m)
		if err != nil {
			return Result{}, err
		}
	default:
		res = SubstituteLiteral(contents, pattern, sub.Text)
	}

	logger.Debug().
		Str("kind", sub.Kind.String()).
		Int("matches", res.Matches).
		Int("replacements", res.Replacements).
		Bool("changed", res.Changed).
		Msg("substitution applied")
	return res, nil
}

// ApplyFile reads the text file at path and applies sub to it. It does NOT
// write changes back to disk.
func ApplyFile(ctx context.Context, path, pattern string, sub substitute.Substitute) (Result, error) {
	contents, err := ReadText(path)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, contents, pattern, sub)
}
