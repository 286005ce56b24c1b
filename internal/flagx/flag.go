// Package flagx extracts selected flags from the process arguments so that
// independent config loaders can each parse only the flags they own.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags (and their values).
//
// Both "-c conf.json" and "-c=conf.json" forms are recognised. A separate
// value is only consumed when it does not itself start with "-".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// lookupString parses os.Args for a single string flag known under the given
// aliases. The last occurrence wins; an absent flag yields "".
func lookupString(aliases ...string) string {
	var value string

	filter := make([]string, 0, len(aliases))
	for _, a := range aliases {
		filter = append(filter, "-"+a)
	}

	fs := flag.NewFlagSet(aliases[0], flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, a := range aliases {
		fs.StringVar(&value, a, "", "")
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], filter))

	return value
}

// ConfigFilePath returns the JSON config path given by -c or -config.
func ConfigFilePath() string {
	return lookupString("config", "c")
}

// EnvFilePath returns the dotenv file path given by -env.
func EnvFilePath() string {
	return lookupString("env")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
