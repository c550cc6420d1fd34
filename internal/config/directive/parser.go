package directive

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercer converts the raw text of an option to its typed value.
type Coercer func(raw string) (any, error)

// LineParser is the built-in line grammar.
//
// Each non-blank, non-comment line is "keyword arguments". The keywords map,
// mouse_map, clear_all_shortcuts, clear_all_mouse_actions, action_alias and
// kitten_alias are statements; every other keyword must name an option of the
// schema and its argument is converted to the type of the schema value.
type LineParser struct {
	schema   map[string]any
	coercers map[string]Coercer
}

// NewLineParser creates a parser whose option types follow schema.
func NewLineParser(schema map[string]any) *LineParser {
	return &LineParser{
		schema: schema,
		coercers: map[string]Coercer{
			"macos_titlebar_color": parseTitlebarColor,
		},
	}
}

// WithCoercer registers a custom conversion for one option.
func (p *LineParser) WithCoercer(name string, c Coercer) *LineParser {
	p.coercers[name] = c
	return p
}

// Parse implements Parser.
func (p *LineParser) Parse(line string, loc Location) ([]Directive, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	keyword, args := splitWord(line)
	var (
		out []Directive
		err error
	)
	switch keyword {
	case "map":
		var d Directive
		d, err = parseMap(args, loc)
		out = []Directive{d}
	case "mouse_map":
		out, err = parseMouseMap(args, loc)
	case "clear_all_shortcuts":
		out, err = parseClear(args, ClearAllKeyBindings(loc))
	case "clear_all_mouse_actions":
		out, err = parseClear(args, ClearAllMouseBindings(loc))
	case "action_alias", "kitten_alias":
		var d Directive
		d, err = parseAlias(keyword, args, loc)
		out = []Directive{d}
	default:
		var d Directive
		d, err = p.parseOption(keyword, args, loc)
		out = []Directive{d}
	}
	if err != nil {
		return nil, &ParseError{Location: loc, Err: err}
	}
	return out, nil
}

func (p *LineParser) parseOption(name, raw string, loc Location) (Directive, error) {
	def, ok := p.schema[name]
	if !ok {
		return Directive{}, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	var (
		val any
		err error
	)
	if c, ok := p.coercers[name]; ok {
		val, err = c(raw)
	} else {
		val, err = coerce(def, raw)
	}
	if err != nil {
		return Directive{}, fmt.Errorf("%w for %s: %v", ErrInvalidValue, name, err)
	}

	return Directive{Kind: KindOption, Name: name, Value: val, Location: loc}, nil
}

// coerce converts raw to the dynamic type of def.
func coerce(def any, raw string) (any, error) {
	switch def.(type) {
	case bool:
		return ParseBool(raw)
	case int64:
		return strconv.ParseInt(raw, 0, 64)
	case float64:
		return strconv.ParseFloat(raw, 64)
	case string:
		return raw, nil
	default:
		return nil, fmt.Errorf("options of type %T cannot be set from text", def)
	}
}

// ParseBool accepts the yes/no spellings used in config files.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true", "on":
		return true, nil
	case "n", "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", raw)
}

// parseTitlebarColor encodes "system", "background" or a #rrggbb color.
// Zero means the system default.
func parseTitlebarColor(raw string) (any, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "system":
		return int64(0), nil
	case "background":
		return int64(1), nil
	}
	if strings.HasPrefix(raw, "#") && len(raw) == 7 {
		rgb, err := strconv.ParseUint(raw[1:], 16, 32)
		if err != nil {
			return nil, err
		}
		return int64(rgb<<8 | 2), nil
	}
	return strconv.ParseInt(raw, 0, 64)
}

func parseClear(args string, sentinel Directive) ([]Directive, error) {
	if args == "" {
		return []Directive{sentinel}, nil
	}
	on, err := ParseBool(args)
	if err != nil {
		return nil, err
	}
	if !on {
		return nil, nil
	}
	return []Directive{sentinel}, nil
}

func parseAlias(keyword, args string, loc Location) (Directive, error) {
	name, expansion := splitWord(args)
	if name == "" || expansion == "" {
		return Directive{}, fmt.Errorf("%w: %s needs a name and an expansion", ErrMissingArgument, keyword)
	}
	kind := KindActionAlias
	if keyword == "kitten_alias" {
		kind = KindKittenAlias
	}
	return Directive{Kind: kind, Name: name, Value: expansion, Location: loc}, nil
}

// parseMap parses "[--flag value]... trigger[>chord...] [action]".
func parseMap(args string, loc Location) (Directive, error) {
	opts := DefaultKeyOptions()
	rest := args
	for strings.HasPrefix(rest, "--") {
		var flag string
		flag, rest = splitWord(rest)
		name, value, hasValue := strings.Cut(flag[2:], "=")
		if !hasValue {
			value, rest = splitWord(rest)
		}
		if value == "" {
			return Directive{}, fmt.Errorf("%w: --%s needs a value", ErrMissingArgument, name)
		}
		switch name {
		case "mode":
			opts.Mode = value
		case "new-mode":
			opts.NewMode = value
		case "on-unknown":
			opts.OnUnknown = value
		case "on-action":
			opts.OnAction = value
		case "when-focus-on":
			opts.WhenFocusOn = value
		default:
			return Directive{}, fmt.Errorf("%w: --%s", ErrUnknownFlag, name)
		}
	}

	trigger, action := splitWord(rest)
	if trigger == "" {
		return Directive{}, fmt.Errorf("%w: map needs a key", ErrMissingArgument)
	}
	if action == "" {
		action = "no_op"
	}

	d := Directive{
		Kind:       KindKeyBinding,
		Options:    opts,
		Definition: action,
		Location:   loc,
	}
	chords := strings.Split(trigger, ">")
	d.Trigger = chords[0]
	if len(chords) > 1 {
		d.IsSequence = true
		d.Rest = chords[1:]
	}
	return d, nil
}

// parseMouseMap parses "button event modes [action]" and yields one
// directive per grab mode. An empty action removes the binding.
func parseMouseMap(args string, loc Location) ([]Directive, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: mouse_map needs a button, an event type and modes", ErrMissingArgument)
	}
	button, event, modes := fields[0], fields[1], fields[2]
	action := ""
	if len(fields) > 3 {
		action = strings.Join(fields[3:], " ")
	}

	var out []Directive
	for _, mode := range strings.Split(modes, ",") {
		mode = strings.TrimSpace(mode)
		if mode == "" {
			continue
		}
		out = append(out, Directive{
			Kind:       KindMouseBinding,
			Trigger:    button + " " + event + " " + mode,
			Definition: action,
			Location:   loc,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: mouse_map needs at least one mode", ErrMissingArgument)
	}
	return out, nil
}

// splitWord splits s at the first run of whitespace.
func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
