package compiler

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/css"
	"vindur/diag"
)

const forwardPrefix, forwardSuffix = "__vfwd_", "__"

var forwardRe = regexp.MustCompile(forwardPrefix + `(\d+)` + forwardSuffix)

// body turns resolved template text into rule body.
func (u *unit) body(text string) string {
	return u.scoped.Rewrite(css.Clean(text))
}

// takeLayer returns pending layer name consuming it.
func (u *unit) takeLayer() string {
	if u.layer == nil {
		return ""
	}
	name := *u.layer
	u.layer = nil
	return name
}

// detached resolves template of construct which is never layered, pending
// layer stays for the construct after it.
func (u *unit) detached(n *js.TemplateExpr) (string, []string, error) {
	pending := u.layer
	u.layer = nil
	defer func() { u.layer = pending }()
	return u.template(n)
}

func (u *unit) addRule(at js.INode, text, layer string) {
	u.rules = append(u.rules, css.Rule{Text: text, Source: u.Locate(at), Layer: layer})
}

// resolveForwardRefs replaces placeholders left for components referenced
// before their declaration.
func (u *unit) resolveForwardRefs() error {
	for i := range u.rules {
		r := &u.rules[i]
		if !strings.Contains(r.Text, forwardPrefix) {
			continue
		}
		var err error
		r.Text = forwardRe.ReplaceAllStringFunc(r.Text, func(m string) string {
			idx, convErr := strconv.Atoi(forwardRe.FindStringSubmatch(m)[1])
			if convErr != nil || idx >= len(u.forwards) {
				return m
			}
			name := u.forwards[idx]
			c, ok := u.components[name]
			if !ok {
				if err == nil {
					err = &diag.Error{
						Kind:     diag.KindUnresolved,
						Message:  "forward reference to unknown component " + name,
						Position: r.Source,
					}
				}
				return m
			}
			return "." + c.Class
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// classList joins class names dropping duplicates.
func classList(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		for _, c := range g {
			if c != "" && !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}
