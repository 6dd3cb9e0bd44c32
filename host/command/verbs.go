package command

import (
	"fmt"
	"strings"
)

// Verb is a word-style command accepted by the shell and the MQTT bridge,
// translated into flags before it reaches the Runner.
type Verb struct {
	Name    string
	Help    string
	MinArgs int
}

// Verbs lists the word-style commands
var Verbs = []Verb{
	{"port", "port <device> - open the serial port", 1},
	{"clear", "clear - clear the display", 0},
	{"cursor", "cursor <row> <column> - move the cursor (0...1, 0...15)", 2},
	{"message", "message <text...> - print up to 16 characters", 1},
	{"glyph", "glyph <index> - print a special glyph (0...7)", 1},
	{"createglyph", "createglyph <index> <hex bytes...> - replace a glyph (5x8 bitmap)", 2},
	{"run", "run <flags...> - execute lcdctl flags, e.g. run --clear --message HI", 1},
}

// FlagsFor translates a verb and its arguments into lcdctl flags.
// Message text and glyph bitmaps may span several arguments.
func FlagsFor(name string, args []string) ([]string, error) {
	for _, v := range Verbs {
		if v.Name != name {
			continue
		}
		if len(args) < v.MinArgs {
			return nil, fmt.Errorf("usage: %s", v.Help)
		}
		switch name {
		case "port":
			return []string{"--port", args[0]}, nil
		case "clear":
			return []string{"--clear"}, nil
		case "cursor":
			return []string{"--cursor", args[0], args[1]}, nil
		case "message":
			return []string{"--message", strings.Join(args, " ")}, nil
		case "glyph":
			return []string{"--glyph", args[0]}, nil
		case "createglyph":
			return []string{"--createglyph", args[0], strings.Join(args[1:], " ")}, nil
		case "run":
			return args, nil
		}
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

// ParseLine turns a tokenized command line into flags. Lines starting
// with a flag are passed through; otherwise the first token is a verb.
func ParseLine(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	if strings.HasPrefix(tokens[0], "--") {
		return tokens, nil
	}
	return FlagsFor(tokens[0], tokens[1:])
}
