package graph

import (
	"iter"
	"regexp"
	"unicode/utf8"
)

// Server-side include directives. Whitespace is tolerated around every token;
// the attribute value runs to the next double quote.
var (
	virtualIncludeRe = regexp.MustCompile(`<!--\s*#include\s+virtual\s*=\s*"([^"]+)"\s*-->`)
	fileIncludeRe    = regexp.MustCompile(`<!--\s*#include\s+file\s*=\s*"([^"]+)"\s*-->`)
)

// ExtractIncludes yields the include directives in text: every virtual
// include first, then every file include, each in source order. Text that
// does not match either directive form is ignored.
//
// A virtual include's Ref drops the first character of the captured value,
// which is normally the leading path separator of a site-absolute path.
func ExtractIncludes(text string) iter.Seq[Include] {
	return func(yield func(Include) bool) {
		for _, m := range virtualIncludeRe.FindAllStringSubmatch(text, -1) {
			if !yield(Include{Kind: IncludeVirtual, Ref: dropFirstRune(m[1]), Raw: m[1]}) {
				return
			}
		}
		for _, m := range fileIncludeRe.FindAllStringSubmatch(text, -1) {
			if !yield(Include{Kind: IncludeFile, Ref: m[1], Raw: m[1]}) {
				return
			}
		}
	}
}

func dropFirstRune(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[size:]
}
