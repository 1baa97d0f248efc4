package pipeline

import (
	"context"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"go.trai.ch/pack/internal/core/domain"
)

// Define substitutes the constants of table into every code module.
func Define(table *domain.DefineTable) Transform {
	t := Transform{Name: "define"}
	if table.Empty() {
		return t
	}

	subs := table.Substitutions()
	t.Module = Hook[ModuleFunc]{Order: OrderPre, Fn: func(_ context.Context, mod domain.Module) (domain.Module, error) {
		if mod.Loader == domain.LoaderText {
			return mod, nil
		}
		mod.Code = Substitute(mod.Code, subs)
		return mod, nil
	}}
	return t
}

// Substitute replaces every whole-token occurrence of each substitution outside
// string, template, regular expression and comment text. Declarations and
// assignment targets are kept. Substitute(Substitute(x)) equals Substitute(x)
// for literal replacements. Code after a lexing error is left as is.
func Substitute(code string, subs []domain.Substitution) string {
	if len(subs) == 0 {
		return code
	}

	var out strings.Builder
	l := js.NewLexer(parse.NewInputString(code))
	prev, word := tokenNone, ""
	pos, last := 0, 0

	for {
		tt, data := l.Next()
		if (tt == js.DivToken || tt == js.DivEqToken) && regexpAllowed(prev, word) {
			tt, data = l.RegExp()
		}
		if tt == js.ErrorToken {
			break
		}
		start := pos
		pos += len(data)
		if start < last {
			continue
		}

		switch tt {
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			continue
		case js.StringToken, js.TemplateToken, js.TemplateEndToken, js.RegExpToken, js.PrivateIdentifierToken:
			prev = tokenValue
			continue
		case js.TemplateStartToken, js.TemplateMiddleToken:
			prev = tokenOperator
			continue
		}

		kind := classify(data)
		if kind == tokenName && prev != tokenDot {
			sub, ok := matchToken(code, start, subs)
			if ok && !(prev == tokenName && declares(word)) && !assigned(code, start+len(sub.Token)) {
				if out.Len() == 0 {
					out.Grow(len(code))
				}
				out.WriteString(code[last:start])
				out.WriteString(sub.Literal)
				last = start + len(sub.Token)
				prev = tokenValue
				continue
			}
		}
		prev, word = kind, ""
		if kind == tokenName {
			word = string(data)
		}
	}

	if last == 0 {
		return code
	}
	out.WriteString(code[last:])
	return out.String()
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenName
	tokenDot
	tokenValue
	tokenOperator
)

// classify sorts a code token by what may follow it.
func classify(data []byte) tokenKind {
	switch c := data[0]; {
	case isIdentStart(c) || c == '\\':
		return tokenName
	case c >= '0' && c <= '9', c == '.' && len(data) > 1 && data[1] >= '0' && data[1] <= '9':
		return tokenValue
	}
	switch string(data) {
	case ".", "?.":
		return tokenDot
	case ")", "]", "}", "++", "--":
		return tokenValue
	}
	return tokenOperator
}

// regexpAllowed reports whether a slash after prev starts a regular expression.
func regexpAllowed(prev tokenKind, word string) bool {
	switch prev {
	case tokenValue, tokenDot:
		return false
	case tokenName:
		return slices.Contains(operatorKeywords, word)
	}
	return true
}

// operatorKeywords are the keywords an expression can follow.
var operatorKeywords = []string{
	"await", "case", "delete", "do", "else", "in", "instanceof", "new",
	"of", "return", "throw", "typeof", "void", "yield",
}

// matchToken returns the longest substitution starting at i that ends on a token boundary.
func matchToken(src string, i int, subs []domain.Substitution) (domain.Substitution, bool) {
	for _, sub := range subs {
		end := i + len(sub.Token)
		if !strings.HasPrefix(src[i:], sub.Token) {
			continue
		}
		if end < len(src) && isIdentPart(src[end]) {
			continue
		}
		return sub, true
	}
	return domain.Substitution{}, false
}

func declares(word string) bool {
	return word == "const" || word == "let" || word == "var"
}

// assigned reports whether an assignment operator follows position end.
func assigned(src string, end int) bool {
	for end < len(src) && isSpace(src[end]) {
		end++
	}
	if end >= len(src) || src[end] != '=' {
		return false
	}
	return end+1 >= len(src) || (src[end+1] != '=' && src[end+1] != '>')
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
