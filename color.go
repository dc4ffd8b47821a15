package debugformat

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ColorTable maps a level name to the style tokens applied, in order, to
// text logged at that level.
type ColorTable map[string][]string

// NpmColors is the default color table.
var NpmColors = ColorTable{
	"error":   {"red"},
	"warn":    {"yellow"},
	"info":    {"green"},
	"http":    {"green"},
	"verbose": {"cyan"},
	"debug":   {"blue"},
	"silly":   {"magenta"},
}

// ParseColorTable builds a table from space separated token lists, as in
// {"error": "bold red", "info": "green"}.
func ParseColorTable(entries map[string]string) ColorTable {
	table := make(ColorTable, len(entries))
	for level, tokens := range entries {
		table[level] = strings.Fields(tokens)
	}
	return table
}

// Colorizer applies a single style token to text.
// Unknown tokens must return text unchanged.
type Colorizer interface {
	Colorize(text, token string) string
}

// ColorizerFunc adapts a function to Colorizer.
type ColorizerFunc func(text, token string) string

func (f ColorizerFunc) Colorize(text, token string) string {
	return f(text, token)
}

// ANSIColorizer renders tokens as ANSI escape sequences through
// github.com/fatih/color. It ignores color.NoColor: deciding whether to
// colorize at all is left to the caller.
type ANSIColorizer struct{}

func (ANSIColorizer) Colorize(text, token string) string {
	c := styleFor(token)
	if c == nil {
		return text
	}
	return c.Sprint(text)
}

var namedColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

var modifiers = map[string]color.Attribute{
	"reset":         color.Reset,
	"bold":          color.Bold,
	"dim":           color.Faint,
	"italic":        color.Italic,
	"underline":     color.Underline,
	"blink":         color.BlinkSlow,
	"inverse":       color.ReverseVideo,
	"hidden":        color.Concealed,
	"strikethrough": color.CrossedOut,
}

// styleTable holds every named token: colors, their bright and background
// variants, modifiers and the legacy aliases.
var styleTable = buildStyleTable()

func buildStyleTable() map[string]color.Attribute {
	table := make(map[string]color.Attribute, 5*len(namedColors)+len(modifiers)+8)

	for name, fg := range namedColors {
		title := strings.ToUpper(name[:1]) + name[1:]
		bright := fg + (color.FgHiBlack - color.FgBlack)
		bg := fg + (color.BgBlack - color.FgBlack)
		bgBright := fg + (color.BgHiBlack - color.FgBlack)

		table[name] = fg
		table[name+"Bright"] = bright
		table["bright"+title] = bright
		table["bg"+title] = bg
		table["bg"+title+"Bright"] = bgBright
		table["bgBright"+title] = bgBright
	}

	for name, attr := range modifiers {
		table[name] = attr
	}

	table["gray"] = color.FgHiBlack
	table["grey"] = color.FgHiBlack
	table["blackBright"] = color.FgHiBlack
	table["bgGray"] = color.BgHiBlack
	table["bgGrey"] = color.BgHiBlack

	return table
}

func styleFor(token string) *color.Color {
	var c *color.Color

	switch {
	case strings.HasPrefix(token, "bg#"):
		r, g, b, ok := parseHex(token[2:])
		if !ok {
			return nil
		}
		c = color.New().AddBgRGB(r, g, b)
	case strings.HasPrefix(token, "#"):
		r, g, b, ok := parseHex(token)
		if !ok {
			return nil
		}
		c = color.New().AddRGB(r, g, b)
	default:
		attr, ok := styleTable[token]
		if !ok {
			return nil
		}
		c = color.New(attr)
	}

	c.EnableColor()
	return c
}

// parseHex parses "#rrggbb" or "#rgb".
func parseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// colorize applies every token in sequence, each as its own styled span.
func colorize(c Colorizer, text string, tokens []string) string {
	for _, token := range tokens {
		text = c.Colorize(text, token)
	}
	return text
}
