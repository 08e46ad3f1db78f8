package render

import _ "embed"

//go:embed assets/getting-started.md
var gettingStarted string

// GettingStarted returns the static scripting guide shipped with the tool.
func GettingStarted() string {
	return gettingStarted
}
