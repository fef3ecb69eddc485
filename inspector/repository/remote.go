package repository

import (
	"regexp"
	"strings"
)

var remoteExprs = []*regexp.Regexp{
	// scp-like: git@host:owner/repo.git
	regexp.MustCompile(`^(?:[\w.+-]+@)?([\w.-]+):(?:/)?([^/\s][^\s]*?/[^/\s]+?)(?:\.git)?/?$`),
	// ssh://, git://, http(s)://, optionally with user and port
	regexp.MustCompile(`^(?:ssh|git|https?)://(?:[^@/\s]+@)?([\w.-]+)(?::\d+)?/([^/\s][^\s]*?/[^/\s]+?)(?:\.git)?/?$`),
}

// ParseRemote extracts the host and owner/repository identifier from a remote URL
func ParseRemote(URL string) (*Remote, bool) {
	URL = strings.TrimSpace(URL)
	if URL == "" || strings.HasPrefix(URL, "file://") || strings.HasPrefix(URL, "/") {
		return nil, false
	}
	for _, expr := range remoteExprs {
		matches := expr.FindStringSubmatch(URL)
		if len(matches) != 3 {
			continue
		}
		return &Remote{Host: "https://" + matches[1], Slug: matches[2]}, true
	}
	return nil, false
}
