package schema

import (
	"hash/fnv"
	"net/url"
	"strconv"
	"strings"
)

// authorIDMask keeps ids within the 53 bits a JSON number holds exactly.
const authorIDMask = (1 << 53) - 1

// AuthorID derives a stable positive id for an author from the lower-cased email,
// falling back to the name when the email is empty.
func AuthorID(email, name string) int64 {
	key := strings.ToLower(strings.TrimSpace(email))
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(name))
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	id := int64(h.Sum64() & authorIDMask)
	if id == 0 {
		return 1
	}
	return id
}

// AuthorHref returns the relative detail URL of an author within a repository.
func AuthorHref(id int64, repo string) string {
	return "/author/" + strconv.FormatInt(id, 10) + "?repo=" + url.QueryEscape(repo)
}

// MaxCount returns the largest count in the chart data, or 0 when empty.
func MaxCount(data []ImpactEntry) int {
	maxCount := 0
	for _, d := range data {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}
	return maxCount
}
