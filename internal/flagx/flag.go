// Package flagx lets several components parse their own flags out of one
// shared command line without tripping over each other's names.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// flagName strips one or two leading dashes. Go's flag package accepts both
// spellings, so "-config" and "--config" name the same flag.
func flagName(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
		return "", false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name, name != ""
}

func nameSet(flags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		if name, ok := flagName(f); ok {
			set[name] = struct{}{}
		}
	}
	return set
}

// FilterArgs returns the subset of args that belongs to allowedFlags.
//
// Value flags are kept with their value, given either as "-f=value" or as
// the following argument. Flags listed in boolFlags never consume the next
// argument ("-url startup.json" keeps only "-url"). Filtering stops at "--".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := nameSet(allowedFlags)
	switches := nameSet(boolFlags)

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, ok := flagName(arg)
		if !ok {
			continue
		}
		_, isValue := allowed[name]
		_, isBool := switches[name]
		if !isValue && !isBool {
			continue
		}

		filtered = append(filtered, arg)
		if isBool || strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file named by -c or -config, or "" when
// neither is given. Every other argument is ignored.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
