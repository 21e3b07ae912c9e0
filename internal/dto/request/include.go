package request

import "strings"

// Include lists derived views a caller asked to add to the default
// serialized form, e.g. ?include=items.
type Include []string

func ParseInclude(raw string) Include {
	var out Include
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

func (in Include) Has(view string) bool {
	for _, v := range in {
		if v == view {
			return true
		}
	}
	return false
}
