package filter

import "strings"

// lineFilter is the shared base for line-oriented filters. It splits the
// content on "\n", keeps the lines accepted by keep and rejoins them with
// "\n" in their original order.
type lineFilter struct {
	keep func(line string) (bool, error)
}

func (f lineFilter) apply(content string) (string, error) {
	if content == "" {
		return "", nil
	}

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		ok, err := f.keep(line)
		if err != nil {
			return "", err
		}
		if ok {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}
