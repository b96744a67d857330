package cmd

import "strings"

// bareFlagDefaults maps flags that may appear without a value to the
// sentinel that flag parsing later resolves against the current clock.
var bareFlagDefaults = map[string]string{
	"-d": "today", "--date": "today",
	"-s": "now", "--start": "now",
	"-e": "now", "--end": "now",
	"--break-start": "now",
	"--break-end":   "now",
}

// breakAliases maps the two-letter break shorthands, which pflag cannot
// register, to their long flags.
var breakAliases = map[string]string{
	"-bs": "--break-start",
	"-be": "--break-end",
}

// normalizeArgs rewrites the two-letter break shorthands to their long
// form and bare date/time flags into their --flag=value form so pflag
// sees an attached value. A flag counts as bare when it is the last token
// or the next token is itself a flag; "--start 09:00" still consumes the
// next token as usual. Everything after "--" is left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if long, ok := breakAliases[arg]; ok {
			arg = long
		} else if name, val, found := strings.Cut(arg, "="); found {
			if long, ok := breakAliases[name]; ok {
				arg = long + "=" + val
			}
		}
		def, ok := bareFlagDefaults[arg]
		if !ok {
			out = append(out, arg)
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, arg)
			continue
		}
		out = append(out, arg+"="+def)
	}
	return out
}
