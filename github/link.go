package github

import "strings"

// parseLinks maps each rel of an RFC 8288 Link header to its target.
func parseLinks(header string) map[string]string {
	links := make(map[string]string)
	for _, part := range strings.Split(header, ",") {
		segs := strings.Split(part, ";")
		if len(segs) < 2 {
			continue
		}
		target := strings.TrimSpace(segs[0])
		if len(target) < 2 || target[0] != '<' || target[len(target)-1] != '>' {
			continue
		}
		target = target[1 : len(target)-1]

		for _, param := range segs[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
				continue
			}
			// rel may list several space-separated relation types.
			for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(value), `"`)) {
				links[strings.ToLower(rel)] = target
			}
		}
	}
	return links
}
