// This file is part of regvm.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"regexp"
	"strconv"
	"strings"
)

// token is a single normalized token from the source stream, tagged
// as a label definition if it ended in ':' before the colon was
// stripped.
type token struct {
	text    string
	isLabel bool
}

var runsOfSpace = regexp.MustCompile(`\s+`)

// normalize implements stage 1: strip ';' comments, collapse runs of
// whitespace to a single space and join every line into one stream.
func normalize(src string) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		if idx := strings.IndexByte(l, ';'); idx >= 0 {
			l = l[:idx]
		}
		lines[i] = strings.TrimSpace(l)
	}
	text := strings.Join(lines, " ")
	text = runsOfSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// expandStringLiterals implements stage 2: walk the stream tracking
// whether we're inside a double-quoted string. Inside quotes, each
// character is replaced by its code point followed by a comma; the
// quote characters themselves are dropped. Outside quotes, characters
// pass through unchanged.
func expandStringLiterals(text string) string {
	var b strings.Builder
	inQuotes := false
	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(',')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

const (
	dataMarker = "section data:"
	textMarker = "section text:"
)

// splitTokens splits a section's text on commas and spaces, drops
// empty tokens, and tags label definitions (a trailing ':', stripped).
func splitTokens(s string) []token {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	toks := make([]token, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.HasSuffix(f, ":") {
			toks = append(toks, token{text: strings.TrimSuffix(f, ":"), isLabel: true})
		} else {
			toks = append(toks, token{text: f})
		}
	}
	return toks
}

// sectionize implements stage 3: locate the section markers and
// tokenize the data and text sections independently. The data section
// is optional.
func sectionize(text string) (dataToks, textToks []token, err error) {
	textIdx := strings.Index(text, textMarker)
	if textIdx < 0 {
		return nil, nil, errSyntax("missing \"section text:\" marker")
	}
	dataIdx := strings.Index(text, dataMarker)
	if dataIdx >= 0 && dataIdx < textIdx {
		dataToks = splitTokens(text[dataIdx+len(dataMarker) : textIdx])
	}
	textToks = splitTokens(text[textIdx+len(textMarker):])
	return dataToks, textToks, nil
}
