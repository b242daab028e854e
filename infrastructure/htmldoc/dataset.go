package htmldoc

import (
	"fmt"
	"strings"
)

// DatasetAttribute converts a dataset key to its data-* attribute name, the way
// element.dataset does: every ASCII upper-case letter becomes '-' followed by its
// lower-case form. A key containing '-' followed by a lower-case letter has no
// attribute form and is rejected.
func DatasetAttribute(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("dataset key is empty")
	}

	var sb strings.Builder
	sb.WriteString("data-")
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '-' && i+1 < len(key) && key[i+1] >= 'a' && key[i+1] <= 'z' {
			return "", fmt.Errorf("invalid dataset key %q", key)
		}
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			c += 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

// DatasetKey converts a data-* attribute name back to its dataset key.
// ok is false when name is not a data-* attribute.
func DatasetKey(name string) (key string, ok bool) {
	rest, found := strings.CutPrefix(strings.ToLower(name), "data-")
	if !found {
		return "", false
	}

	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '-' && i+1 < len(rest) && rest[i+1] >= 'a' && rest[i+1] <= 'z' {
			sb.WriteByte(rest[i+1] - ('a' - 'A'))
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String(), true
}
