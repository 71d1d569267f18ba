package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindManifestLists(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lists []string
	}{
		{
			name:  "animate properties",
			text:  `lib.properties = { width: 300, manifest: [ {src:"images/a.png", id:"a"} ], preloads: [] };`,
			lists: []string{`[ {src:"images/a.png", id:"a"} ]`},
		},
		{
			name:  "multi-line",
			text:  "p = {\n\tmanifest: [\n\t\t{src:\"a.png\", id:\"a\"},\n\t\t{src:\"b.png\", id:\"b\"}\n\t],\n};",
			lists: []string{"[\n\t\t{src:\"a.png\", id:\"a\"},\n\t\t{src:\"b.png\", id:\"b\"}\n\t]"},
		},
		{
			name:  "quoted key",
			text:  `{"manifest": [{"src":"a.png","id":"a"}]}`,
			lists: []string{`[{"src":"a.png","id":"a"}]`},
		},
		{
			name:  "bracket inside string",
			text:  `manifest: [{src:"a].png", id:"a"}], other: []`,
			lists: []string{`[{src:"a].png", id:"a"}]`},
		},
		{
			name:  "two manifests",
			text:  `a = {manifest: [1]}; b = {manifest:[2]};`,
			lists: []string{`[1]`, `[2]`},
		},
		{name: "identifier suffix", text: `myManifest: [1]`},
		{name: "identifier prefix", text: `manifestUrl: [1]`},
		{name: "not a list", text: `manifest: "x"`},
		{name: "unbalanced", text: `manifest: [ {src:"a.png", id:"a"}`},
		{name: "mismatched closer", text: `manifest: [ {src:"a.png" ]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range findManifestLists(tt.text) {
				got = append(got, tt.text[s.start:s.end])
			}
			assert.Equal(t, tt.lists, got)
		})
	}
}

func TestParseAssetLiteral(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    assetLiteral
		wantOK  bool
	}{
		{"animate", `{src:"images/a.png?1700000000", id:"a"}`, assetLiteral{src: "images/a.png?1700000000", id: "a", idQuote: '"'}, true},
		{"reversed order", `{id:"a", src:"images/a.png"}`, assetLiteral{src: "images/a.png", id: "a", idQuote: '"'}, true},
		{"extra fields", `{src:"s.mp3", type:"sound", id:"click", preload:true}`, assetLiteral{src: "s.mp3", id: "click", idQuote: '"'}, true},
		{"quoted keys", `{"src": "a.png", "id": "a"}`, assetLiteral{src: "a.png", id: "a", idQuote: '"'}, true},
		{"single quotes", `{src:'a.png', id:'it"s'}`, assetLiteral{src: "a.png", id: `it"s`, idQuote: '\''}, true},
		{"nested value", `{data:{src:"x"}, src:"a.png", id:"a"}`, assetLiteral{src: "a.png", id: "a", idQuote: '"'}, true},
		{"brace in string", `{src:"a}.png", id:"a"}`, assetLiteral{src: "a}.png", id: "a", idQuote: '"'}, true},
		{"missing id", `{src:"a.png"}`, assetLiteral{src: "a.png"}, false},
		{"missing src", `{id:"a"}`, assetLiteral{id: "a", idQuote: '"'}, false},
		{"non-string src", `{src:imagePath, id:"a"}`, assetLiteral{id: "a", idQuote: '"'}, false},
		{"empty", `{}`, assetLiteral{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAssetLiteral(tt.literal)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteObjectLiterals(t *testing.T) {
	text := `[{src:"a.png", id:"a"}, {group:{src:"b.png", id:"b"}}, "{not:an object}", {other:1}]`

	var seen []string
	got, err := rewriteObjectLiterals(text, func(lit string) (string, bool, error) {
		seen = append(seen, lit)
		asset, ok := parseAssetLiteral(lit)
		if !ok {
			return "", false, nil
		}
		return "<" + asset.id + ">", true, nil
	})
	require.NoError(t, err)

	assert.Equal(t, `[<a>, {group:<b>}, "{not:an object}", {other:1}]`, got)
	assert.Equal(t, []string{
		`{src:"a.png", id:"a"}`,
		`{group:{src:"b.png", id:"b"}}`,
		`{src:"b.png", id:"b"}`,
		`{other:1}`,
	}, seen)
}

func TestRewriteObjectLiterals_Identity(t *testing.T) {
	text := `[{src:"a.png", id:"a"} /* {src:"c.png", id:"c"} */]`
	got, err := rewriteObjectLiterals(text, func(string) (string, bool, error) { return "", false, nil })
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestRewriteObjectLiterals_SkipsComments(t *testing.T) {
	text := "[ // {src:\"x.png\", id:\"x\"}\n{src:\"a.png\", id:\"a\"}]"
	got, err := rewriteObjectLiterals(text, func(lit string) (string, bool, error) {
		return strings.ToUpper(lit), true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "[ // {src:\"x.png\", id:\"x\"}\n{SRC:\"A.PNG\", ID:\"A\"}]", got)
}

func TestMatchBracket(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"simple", `[1,2]`, 5, true},
		{"nested", `[{a:[1]}, (2)] tail`, 14, true},
		{"escaped quote", `["a\"]b"]`, 9, true},
		{"template literal", "[`]`]", 5, true},
		{"line comment", "[1 // ]\n]", 9, true},
		{"unterminated", `[1,2`, 0, false},
		{"mismatch", `[1}`, 0, false},
		{"unterminated string", `["abc]`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchBracket(tt.text, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
