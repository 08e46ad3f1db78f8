package doccomment

import "strings"

// Header is the parsed form of a module's leading block comment.
type Header struct {
	Name        string
	Description string
}

// ParseHeader extracts the module name and description from a file-leading
// block comment. @brief text wins; otherwise the first few non-tag lines are
// joined. The name comes from @file with any .lua suffix removed.
func ParseHeader(block string) Header {
	var h Header
	var brief []string
	var fallback []string
	inBrief := false

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(stripContinuation(raw))

		if strings.HasPrefix(line, "@") {
			tag, rest := splitTag(line)
			inBrief = false
			switch tag {
			case "@file":
				h.Name = strings.TrimSuffix(rest, ".lua")
			case "@brief", "@description":
				if rest != "" {
					brief = append(brief, rest)
				}
				inBrief = true
			}
			continue
		}

		if line == "" {
			inBrief = false
			continue
		}
		if inBrief {
			brief = append(brief, line)
		} else if len(fallback) < 3 {
			fallback = append(fallback, line)
		}
	}

	if len(brief) > 0 {
		h.Description = strings.Join(brief, " ")
	} else {
		h.Description = strings.Join(fallback, " ")
	}
	return h
}
