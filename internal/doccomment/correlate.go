package doccomment

import (
	"regexp"
	"strings"
)

// lookaheadWindow bounds how far past a documentation block the correlator
// searches for the declaration the block belongs to.
const lookaheadWindow = 500

// Declaration is a function declaration found near a documentation block.
type Declaration struct {
	Scope string
	Name  string
}

var (
	metatableDeclRe = regexp.MustCompile(`(\w+)_mt\.__index\.(\w+)\s*=\s*function`)
	standaloneFnRe  = regexp.MustCompile(`function\s+(\w+)\s*\(`)
	assignmentFnRe  = regexp.MustCompile(`(\w+)\s*=\s*function`)
)

// metatablePrefixes maps the short metatable variable prefixes used in the
// extension sources to the scope each one extends. Unknown prefixes fall back
// to a title-cased form of the prefix itself.
var metatablePrefixes = map[string]string{
	"bv":    "BinaryView",
	"func":  "Function",
	"block": "BasicBlock",
	"query": "Query",
}

// Correlate searches the text following a documentation block for the nearest
// declaration, trying the most specific pattern first: a method installed on
// a metatable, then a standalone function definition, then a plain assignment
// to a function value. It reports false when nothing matches in the window.
func Correlate(following string) (Declaration, bool) {
	if len(following) > lookaheadWindow {
		following = following[:lookaheadWindow]
	}

	if m := metatableDeclRe.FindStringSubmatch(following); m != nil {
		return Declaration{Scope: scopeForPrefix(m[1]), Name: m[2]}, true
	}
	if m := standaloneFnRe.FindStringSubmatch(following); m != nil {
		return Declaration{Scope: "global", Name: m[1]}, true
	}
	if m := assignmentFnRe.FindStringSubmatch(following); m != nil {
		return Declaration{Scope: "global", Name: m[1]}, true
	}
	return Declaration{}, false
}

func scopeForPrefix(prefix string) string {
	if scope, ok := metatablePrefixes[prefix]; ok {
		return scope
	}
	return strings.ToUpper(prefix[:1]) + strings.ToLower(prefix[1:])
}
