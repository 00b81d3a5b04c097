package emit

import "strings"

// Style controls the indentation of generated code.
type Style struct {
	StartIndentLevel int  `yaml:"start_indent_level"`
	TabWidth         int  `yaml:"tab_width"`
	ExpandTab        bool `yaml:"expand_tab"`
}

// DefaultStyle indents with four spaces, fields one level deep.
var DefaultStyle = Style{StartIndentLevel: 1, TabWidth: 4, ExpandTab: true}

func (s Style) indent(level int) string {
	if level <= 0 {
		return ""
	}
	if s.ExpandTab {
		return strings.Repeat(" ", level*s.TabWidth)
	}
	return strings.Repeat("\t", level)
}
