package rewrite

import "strings"

// The createjs asset manifest emitted by Adobe Animate is a list literal
// assigned to a "manifest" key inside the generated script:
//
//	lib.properties = {
//		...
//		manifest: [
//			{src:"images/banner_atlas_1.png?1700000000000", id:"banner_atlas_1"},
//			{src:"sounds/click.mp3", id:"click"}
//		],
//		preloads: []
//	};
//
// The helpers below recover those literals with a bracket-depth scanner that
// understands string literals and comments, so nested values and braces
// inside strings do not end a literal early. No other JavaScript syntax is
// interpreted.

const manifestKey = "manifest"

// span is a half-open byte range [start, end) of scanned text.
type span struct {
	start, end int
}

// findManifestLists returns the spans of every list literal assigned to a
// manifest key, brackets included. Unbalanced lists are ignored.
func findManifestLists(text string) []span {
	var out []span
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], manifestKey)
		if j < 0 {
			break
		}
		start := i + j
		p := start + len(manifestKey)
		i = p
		if start > 0 && isIdentByte(text[start-1]) {
			continue
		}
		if p < len(text) && isQuote(text[p]) && start > 0 && text[start-1] == text[p] {
			p++ // quoted key: "manifest": [...]
		}
		p = skipSpace(text, p)
		if p >= len(text) || text[p] != ':' {
			continue
		}
		p = skipSpace(text, p+1)
		if p >= len(text) || text[p] != '[' {
			continue
		}
		end, ok := matchBracket(text, p)
		if !ok {
			continue
		}
		out = append(out, span{start: p, end: end})
		i = end
	}
	return out
}

// rewriteObjectLiterals calls fn for every balanced brace-delimited literal
// in text, outermost first. When fn reports a replacement the literal is
// substituted and its interior is not visited; otherwise scanning descends
// into it. Text outside replaced literals is copied unchanged.
func rewriteObjectLiterals(text string, fn func(literal string) (string, bool, error)) (string, error) {
	var b strings.Builder
	last, replacedAny := 0, false
	for i := 0; i < len(text); {
		switch c := text[i]; {
		case isQuote(c):
			end, ok := skipString(text, i)
			if !ok {
				i = len(text)
				continue
			}
			i = end
		case c == '/' && i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*'):
			i = skipComment(text, i)
		case c == '{':
			end, ok := matchBracket(text, i)
			if !ok {
				i++
				continue
			}
			repl, replaced, err := fn(text[i:end])
			if err != nil {
				return "", err
			}
			if !replaced {
				i++
				continue
			}
			b.WriteString(text[last:i])
			b.WriteString(repl)
			i, last, replacedAny = end, end, true
		default:
			i++
		}
	}
	if !replacedAny {
		return text, nil
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// assetLiteral holds the string fields of a manifest entry.
type assetLiteral struct {
	src     string
	id      string
	idQuote byte
}

// parseAssetLiteral extracts the src and id string fields of an object
// literal (braces included). Keys may be bare or quoted, in any order, among
// other fields. ok is false unless both fields hold string literals.
func parseAssetLiteral(literal string) (asset assetLiteral, ok bool) {
	if len(literal) < 2 {
		return asset, false
	}
	body := literal[1 : len(literal)-1]
	var haveSrc, haveID bool

	for i := 0; i < len(body); {
		i = skipSeparators(body, i)
		if i >= len(body) {
			break
		}

		var key string
		if isQuote(body[i]) {
			end, ok := skipString(body, i)
			if !ok {
				return asset, false
			}
			key, i = body[i+1:end-1], end
		} else {
			start := i
			for i < len(body) && isIdentByte(body[i]) {
				i++
			}
			key = body[start:i]
			if key == "" {
				i = skipValue(body, i)
				continue
			}
		}

		i = skipSpace(body, i)
		if i >= len(body) || body[i] != ':' {
			i = skipValue(body, i)
			continue
		}
		i = skipSpace(body, i+1)
		if i >= len(body) || !isQuote(body[i]) {
			i = skipValue(body, i)
			continue
		}

		end, ok := skipString(body, i)
		if !ok {
			return asset, false
		}
		value := body[i+1 : end-1]
		switch key {
		case "src":
			asset.src, haveSrc = value, true
		case "id":
			asset.id, asset.idQuote, haveID = value, body[i], true
		}
		i = end
	}
	return asset, haveSrc && haveID
}

// matchBracket returns the index just past the bracket that closes the one
// at text[open]. Brackets inside strings and comments are ignored; a
// mismatched closer fails the match.
func matchBracket(text string, open int) (int, bool) {
	stack := make([]byte, 0, 8)
	for i := open; i < len(text); {
		c := text[i]
		switch {
		case isQuote(c):
			end, ok := skipString(text, i)
			if !ok {
				return 0, false
			}
			i = end
			continue
		case c == '/' && i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*'):
			i = skipComment(text, i)
			continue
		case c == '[':
			stack = append(stack, ']')
		case c == '{':
			stack = append(stack, '}')
		case c == '(':
			stack = append(stack, ')')
		case c == ']' || c == '}' || c == ')':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// skipString returns the index just past the string literal starting at
// text[i]. Backslash escapes the following byte.
func skipString(text string, i int) (int, bool) {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return 0, false
}

// skipComment returns the index just past the comment starting at text[i].
func skipComment(text string, i int) int {
	if text[i+1] == '/' {
		if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
			return i + nl + 1
		}
		return len(text)
	}
	if end := strings.Index(text[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(text)
}

// skipValue returns the index of the next top-level comma at or after i,
// or len(text). It always advances unless text[i] is already a comma.
func skipValue(text string, i int) int {
	for i < len(text) {
		c := text[i]
		switch {
		case c == ',':
			return i
		case isQuote(c):
			end, ok := skipString(text, i)
			if !ok {
				return len(text)
			}
			i = end
		case c == '[' || c == '{' || c == '(':
			end, ok := matchBracket(text, i)
			if !ok {
				return len(text)
			}
			i = end
		default:
			i++
		}
	}
	return i
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}

func skipSeparators(text string, i int) int {
	for i < len(text) && (isSpace(text[i]) || text[i] == ',') {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
