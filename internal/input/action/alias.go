// Package action expands action aliases in binding definitions.
//
// Two kinds of alias exist. An action alias rewrites an action whose first
// word is the alias name:
//
//	action_alias launch_tab launch --type=tab --cwd=current
//	map f1 launch_tab vim      ->  launch --type=tab --cwd=current vim
//
// A kitten alias rewrites the kitten name after the "kitten" action:
//
//	kitten_alias hints hints --hints-offset=0
//	map f2 kitten hints --type=url  ->  kitten hints --hints-offset=0 --type=url
package action

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/dshills/alatty/internal/config/directive"
)

// ErrMalformedAction indicates action text that cannot name an action.
var ErrMalformedAction = errors.New("malformed action")

// kittenAction is the action that kitten aliases apply to.
const kittenAction = "kitten"

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// AliasMap holds the alias expansions in effect for one load.
type AliasMap struct {
	actions map[string]string
	kittens map[string]string
}

// BuildAliasMap builds the alias map from alias directives in source order.
// Later declarations of the same name replace earlier ones.
func BuildAliasMap(actionAliases, kittenAliases []directive.Directive) AliasMap {
	m := AliasMap{
		actions: make(map[string]string, len(actionAliases)),
		kittens: make(map[string]string, len(kittenAliases)),
	}
	for _, d := range actionAliases {
		m.actions[d.Name] = fmt.Sprint(d.Value)
	}
	for _, d := range kittenAliases {
		m.kittens[d.Name] = fmt.Sprint(d.Value)
	}
	return m
}

// Actions returns a copy of the action aliases.
func (m AliasMap) Actions() map[string]string {
	return maps.Clone(m.actions)
}

// Kittens returns a copy of the kitten aliases.
func (m AliasMap) Kittens() map[string]string {
	return maps.Clone(m.kittens)
}

// Len returns the number of aliases of both kinds.
func (m AliasMap) Len() int {
	return len(m.actions) + len(m.kittens)
}

// Resolve expands aliases in an action text.
//
// Expansion repeats until the leading word is no longer an alias. Each alias
// is expanded at most once per call, so an alias whose expansion starts with
// its own name expands once and mutually recursive aliases terminate. Empty
// text resolves to empty text.
func (m AliasMap) Resolve(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	usedActions := make(map[string]bool)
	usedKittens := make(map[string]bool)
	for {
		name, args := splitWord(text)
		if !identifier.MatchString(name) {
			return "", fmt.Errorf("%w: %q is not an action name", ErrMalformedAction, name)
		}

		if name == kittenAction {
			kitten, kargs := splitWord(args)
			if kitten == "" {
				return "", fmt.Errorf("%w: kitten needs a name", ErrMalformedAction)
			}
			exp, ok := m.kittens[kitten]
			if !ok || usedKittens[kitten] {
				return text, nil
			}
			usedKittens[kitten] = true
			text = join(kittenAction+" "+exp, kargs)
			continue
		}

		exp, ok := m.actions[name]
		if !ok || usedActions[name] {
			return text, nil
		}
		usedActions[name] = true
		text = join(exp, args)
	}
}

func join(expansion, args string) string {
	expansion = strings.TrimSpace(expansion)
	if args == "" {
		return expansion
	}
	return expansion + " " + args
}

func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
