// Package substitute decides whether a substitute argument is plain text or a
// key/value mapping, and in which syntax the mapping was written.
package substitute

import (
	"context"

	"github.com/rs/zerolog"
)

// Kind tells a literal substitute from a mapping.
type Kind int

const (
	Literal Kind = iota
	Mapping
)

func (k Kind) String() string {
	if k == Mapping {
		return "mapping"
	}
	return "literal"
}

// Format labels the syntax a substitute was recognized in. It is used for
// reporting only.
type Format string

const (
	FormatJSON   Format = "JSON"
	FormatYAML   Format = "YAML"
	FormatCSON   Format = "CSON"
	FormatString Format = "String"
)

// Substitute is either literal Text or a Map of per-token substitutions.
type Substitute struct {
	Kind   Kind
	Format Format
	Text   string
	Map    *Map
}

// Parser is one candidate grammar for a mapping substitute.
type Parser struct {
	Format Format
	Parse  func(raw string) (*Map, error)
}

// Parsers are tried in order by Interpret; the first success wins.
var Parsers = []Parser{
	{Format: FormatJSON, Parse: ParseJSON},
	{Format: FormatYAML, Parse: ParseYAML},
	{Format: FormatCSON, Parse: ParseCSON},
}

// Interpret classifies raw. It never fails: input no parser accepts is a
// literal substitute carrying raw unchanged.
func Interpret(raw string) Substitute {
	return InterpretContext(context.Background(), raw)
}

// InterpretContext is Interpret with parser rejections logged at trace level
// to the logger carried by ctx.
func InterpretContext(ctx context.Context, raw string) Substitute {
	logger := zerolog.Ctx(ctx)
	for _, p := range Parsers {
		m, err := p.Parse(raw)
		if err != nil {
			logger.Trace().Str("format", string(p.Format)).Err(err).Msg("substitute rejected")
			continue
		}
		logger.Debug().Str("format", string(p.Format)).Int("entries", m.Len()).Msg("substitute interpreted as mapping")
		return Substitute{Kind: Mapping, Format: p.Format, Map: m}
	}
	logger.Debug().Msg("substitute interpreted as literal")
	return Substitute{Kind: Literal, Format: FormatString, Text: raw}
}

// Describe renders the verbose report line for s: the mapping in canonical
// JSON, or nothing for a literal.
func (s Substitute) Describe() string {
	if s.Kind != Mapping || s.Map == nil {
		return ""
	}
	return s.Map.String()
}
