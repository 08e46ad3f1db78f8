// Package doccomment parses structured documentation blocks: comment spans
// carrying a fixed tag vocabulary (@luaapi, @description, @param, @return,
// @example) plus the module header form (@file, @brief).
package doccomment

import (
	"regexp"
	"strings"

	"github.com/alecnunn/soldoc/internal/docmodel"
)

// Record is one parsed documentation block. Name may be empty when the
// signature tag did not carry one; callers then fall back to the correlated
// declaration before dropping the record.
type Record struct {
	Scope             string
	Name              string
	Signature         string
	Description       string
	Params            []docmodel.Param
	ReturnType        string
	ReturnDescription string
	Example           string
}

// signatureRe matches Scope:name(...), Scope.name(...) and bare name(...).
var signatureRe = regexp.MustCompile(`^(?:(\w+)[.:])?(\w+)\s*\(`)

// Parse walks the lines of a documentation block with a current-field cursor.
// The second return value reports whether the block is a documentation block
// at all: blocks without a @luaapi tag are not, and never enter the record
// set. Tag lines switch the cursor; non-tag lines accumulate into whichever
// field is open, space-joined for prose fields and line-preserving for
// examples.
func Parse(block string) (*Record, bool) {
	rec := &Record{Scope: "global"}
	sawAPI := false

	type cursor int
	const (
		curNone cursor = iota
		curDescription
		curParam
		curReturn
		curExample
	)
	cur := curNone

	var desc []string
	var retDesc []string
	var example []string

	for _, raw := range strings.Split(block, "\n") {
		line := stripContinuation(raw)
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "@") {
			tag, rest := splitTag(trimmed)
			switch tag {
			case "@luaapi":
				sawAPI = true
				cur = curNone
				rec.Signature = rest
				if m := signatureRe.FindStringSubmatch(rest); m != nil {
					if m[1] != "" {
						rec.Scope = m[1]
					}
					rec.Name = m[2]
				}
			case "@description":
				cur = curDescription
				if rest != "" {
					desc = append(desc, rest)
				}
			case "@param":
				cur = curNone
				if p, ok := parseParam(rest); ok {
					rec.Params = append(rec.Params, p)
					cur = curParam
				}
			case "@return":
				cur = curNone
				if rest != "" {
					parts := strings.SplitN(rest, " ", 2)
					rec.ReturnType = parts[0]
					if len(parts) > 1 {
						retDesc = append(retDesc, strings.TrimSpace(parts[1]))
					}
					cur = curReturn
				}
			case "@example":
				cur = curExample
				example = example[:0]
			default:
				// Unrecognized tag closes the open field.
				cur = curNone
			}
			continue
		}

		switch cur {
		case curDescription:
			if trimmed != "" {
				desc = append(desc, trimmed)
			}
		case curParam:
			if trimmed != "" {
				last := &rec.Params[len(rec.Params)-1]
				last.Description = joinSpace(last.Description, trimmed)
			}
		case curReturn:
			if trimmed != "" {
				retDesc = append(retDesc, trimmed)
			}
		case curExample:
			example = append(example, line)
		}
	}

	if !sawAPI {
		return nil, false
	}

	rec.Description = strings.Join(desc, " ")
	rec.ReturnDescription = strings.Join(retDesc, " ")
	rec.Example = dedent(example)
	return rec, true
}

// parseParam splits a payload of the form "name (type) description" or
// "name type description". Payloads with fewer than three segments are
// skipped, not fatal.
func parseParam(payload string) (docmodel.Param, bool) {
	parts := strings.SplitN(payload, " ", 3)
	if len(parts) < 3 {
		return docmodel.Param{}, false
	}
	typ := parts[1]
	typ = strings.TrimPrefix(typ, "(")
	typ = strings.TrimSuffix(typ, ")")
	return docmodel.Param{
		Name:        parts[0],
		Type:        typ,
		Description: strings.TrimSpace(parts[2]),
	}, true
}

// splitTag separates the tag token from the remainder of its line.
func splitTag(line string) (string, string) {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// stripContinuation removes the per-line comment continuation prefix used in
// C-style doc comments (leading whitespace plus '*'). Lua block comment lines
// have no prefix and pass through unchanged, keeping their indentation.
func stripContinuation(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/") {
		rest := trimmed[1:]
		rest = strings.TrimPrefix(rest, " ")
		return rest
	}
	return line
}

// dedent removes the shared indentation level from example lines and trims
// trailing blank lines, preserving relative indentation inside the example.
func dedent(lines []string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	minIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := len(l) - len(strings.TrimLeft(l, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= minIndent {
			out[i] = l[minIndent:]
		} else {
			out[i] = l
		}
	}
	return strings.Join(out, "\n")
}

func joinSpace(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
