// Package chroma provides syntax highlighting using the chroma
// library.
package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	gitlines "github.com/Omegaice/git-lines"
)

// Compile-time interface verification.
var _ gitlines.Highlighter = (*Highlighter)(nil)

// Highlighter styles source lines using chroma lexers.
type Highlighter struct{}

// NewHighlighter creates a new chroma-based highlighter.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Highlight splits one line of the named file into styled spans.
// Returns nil if no lexer matches the file name or tokenization
// fails. Returns an empty slice for an empty line (valid input, no
// spans).
func (h *Highlighter) Highlight(path, line string) []gitlines.Span {
	if line == "" {
		return []gitlines.Span{}
	}

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return nil
	}

	// Coalesce for better performance with consecutive tokens of the same type
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var spans []gitlines.Span
	for token := iterator(); token != chroma.EOF; token = iterator() {
		spans = append(spans, gitlines.Span{
			Text:  token.Value,
			Style: tokenStyle(token.Type),
		})
	}

	// Lexers append a newline to unterminated input; the caller gave
	// a single line, so take it back off.
	if n := len(spans); n > 0 {
		last := strings.TrimSuffix(spans[n-1].Text, "\n")
		if last == "" {
			spans = spans[:n-1]
		} else {
			spans[n-1].Text = last
		}
	}

	return spans
}

// tokenStyle returns the visual style for a chroma token type.
// Colors are loosely based on the One Dark theme.
func tokenStyle(tt chroma.TokenType) gitlines.Style {
	// Use direct type comparison for specific types,
	// then fall through to category checks for broader matches.
	switch tt {
	// Keywords
	case chroma.Keyword, chroma.KeywordConstant, chroma.KeywordDeclaration,
		chroma.KeywordNamespace, chroma.KeywordPseudo, chroma.KeywordReserved,
		chroma.KeywordType:
		return gitlines.Style{Foreground: "#c678dd", Bold: true}

	// Comments
	case chroma.Comment, chroma.CommentHashbang, chroma.CommentMultiline,
		chroma.CommentPreproc, chroma.CommentPreprocFile, chroma.CommentSingle,
		chroma.CommentSpecial:
		return gitlines.Style{Foreground: "#5c6370"}

	// Strings (String* and LiteralString* are aliases, so only use one set)
	case chroma.String, chroma.StringAffix, chroma.StringBacktick, chroma.StringChar,
		chroma.StringDelimiter, chroma.StringDoc, chroma.StringDouble,
		chroma.StringEscape, chroma.StringHeredoc, chroma.StringInterpol,
		chroma.StringOther, chroma.StringRegex, chroma.StringSingle,
		chroma.StringSymbol:
		return gitlines.Style{Foreground: "#98c379"}

	// Numbers (Number* and LiteralNumber* are aliases, so only use one set)
	case chroma.Number, chroma.NumberBin, chroma.NumberFloat, chroma.NumberHex,
		chroma.NumberInteger, chroma.NumberIntegerLong, chroma.NumberOct:
		return gitlines.Style{Foreground: "#d19a66"}

	// Operators
	case chroma.Operator, chroma.OperatorWord:
		return gitlines.Style{Foreground: "#56b6c2"}

	// Builtin names (e.g., println, len, make)
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return gitlines.Style{Foreground: "#e5c07b"}

	// Function names
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return gitlines.Style{Foreground: "#61afef"}

	// Other names (general identifiers)
	case chroma.Name, chroma.NameAttribute, chroma.NameClass, chroma.NameConstant,
		chroma.NameDecorator, chroma.NameEntity, chroma.NameException,
		chroma.NameLabel, chroma.NameNamespace, chroma.NameOther,
		chroma.NameProperty, chroma.NameTag, chroma.NameVariable,
		chroma.NameVariableAnonymous, chroma.NameVariableClass,
		chroma.NameVariableGlobal, chroma.NameVariableInstance,
		chroma.NameVariableMagic:
		return gitlines.Style{Foreground: "#e06c75"}

	default:
		return gitlines.Style{}
	}
}
