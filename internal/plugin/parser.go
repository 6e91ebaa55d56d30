package plugin

import (
	"fmt"
	"strings"
)

// BindDef is one parsed bind scope before compilation.
type BindDef struct {
	Trigger     string
	Mode        string
	Title       string
	Description string

	// Body holds the action lines verbatim, preserving indentation.
	Body []string
}

// Definition is one parsed def block before compilation.
type Definition struct {
	Name        string
	Title       string
	Description string
	Binds       []BindDef
}

// ParseSource parses one definition source. sourceName is used only in
// diagnostics. A bind line with no trigger abandons the whole source.
//
// The grammar is line oriented: "def" opens a plugin and flushes any
// open scopes, "bind" opens a bind scope within the current plugin,
// "title"/"description" attach to the innermost open scope, and every
// other non-blank line is body text kept verbatim.
func ParseSource(sourceName, content string) ([]Definition, error) {
	var (
		defs []Definition
		def  *Definition
		bind *BindDef
	)

	flushBind := func() {
		if def != nil && bind != nil {
			def.Binds = append(def.Binds, *bind)
		}
		bind = nil
	}
	flushDef := func() {
		flushBind()
		if def != nil {
			defs = append(defs, *def)
		}
		def = nil
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, "\r\n")
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if strings.HasPrefix(stripped, "def ") {
			flushDef()
			def = &Definition{Name: strings.TrimSpace(stripped[4:])}
			continue
		}
		if def == nil {
			// Text before the first def carries no scope.
			continue
		}

		switch {
		case stripped == "bind" || strings.HasPrefix(stripped, "bind "):
			flushBind()
			b, err := parseBindLine(stripped)
			if err != nil {
				return nil, fmt.Errorf("%s: plugin %s: %w", sourceName, def.Name, err)
			}
			bind = b
		case strings.HasPrefix(stripped, "title "):
			if bind != nil {
				bind.Title = strings.TrimSpace(stripped[6:])
			} else {
				def.Title = strings.TrimSpace(stripped[6:])
			}
		case strings.HasPrefix(stripped, "description "):
			if bind != nil {
				bind.Description = strings.TrimSpace(stripped[12:])
			} else {
				def.Description = strings.TrimSpace(stripped[12:])
			}
		default:
			if bind != nil {
				bind.Body = append(bind.Body, line)
			}
		}
	}
	flushDef()
	return defs, nil
}

// parseBindLine parses "bind <trigger> [mode <name>]".
func parseBindLine(line string) (*BindDef, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, ErrMissingTrigger
	}
	b := &BindDef{Trigger: fields[1], Mode: "normal"}
	if len(fields) >= 4 && fields[2] == "mode" {
		b.Mode = strings.ToLower(fields[3])
	}
	return b, nil
}
