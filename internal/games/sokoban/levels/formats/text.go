package formats

import (
	"strings"
)

// ParseText parses a plain map file.
// Lines starting with ';' are header comments; "; key: value" lines become
// metadata, with "name" and "id" setting the level fields.
func ParseText(data []byte) (Level, error) {
	lvl := Level{Metadata: make(map[string]string)}

	var body []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, ";") {
			body = append(body, line)
			continue
		}

		key, value, ok := strings.Cut(strings.TrimSpace(trimmed[1:]), ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "id":
			lvl.ID = value
		case "name":
			lvl.Name = value
		default:
			lvl.Metadata[key] = value
		}
	}

	return fromMap(lvl, strings.Join(body, "\n"))
}
