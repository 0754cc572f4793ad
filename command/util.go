package command

import "strings"

// MustGet unwraps a pflag getter result, panicking when the flag is missing
// or mistyped. Registration goes through the typed methods, so a failure
// here is a programming error, not user input.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func anySlice[T any](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func parseHints(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	hints := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		hints[key] = value
	}
	return hints
}
