package extract

import (
	"regexp"
	"strings"
)

var cdnHostRe = regexp.MustCompile(`^(?:https?:)?//`)

// cdnPatterns are the compiled URL matchers derived from Config.
type cdnPatterns struct {
	logo   []*regexp.Regexp
	photos []*regexp.Regexp
	avatar []*regexp.Regexp
}

func compileCDN(cfg Config) *cdnPatterns {
	c := &cdnPatterns{}
	for _, p := range cfg.LogoCDNPrefixes {
		c.logo = append(c.logo, regexp.MustCompile(`(?:https?:)?//`+regexp.QuoteMeta(p)+`[\w-]+/[\w-]+(?:/[\w-]+)?`))
	}
	for _, p := range cfg.PhotoCDNPrefixes {
		c.photos = append(c.photos, regexp.MustCompile(`(?:https?:)?//`+regexp.QuoteMeta(p)+`[\w-]+/[\w-]+`))
	}
	if cfg.AvatarCDNPrefix != "" {
		prefix := regexp.QuoteMeta(cfg.AvatarCDNPrefix)
		c.avatar = []*regexp.Regexp{
			regexp.MustCompile(`https?://` + prefix + `[\w-]+/[\w-]+/islands-[\w-]+`),
			regexp.MustCompile(`https?://` + prefix + `[\w-]+/[\w-]+(?:/[\w{}-]+)?`),
			regexp.MustCompile(`//` + prefix + `[\w-]+/[\w-]+(?:/[\w{}-]+)?`),
		}
	}
	return c
}

// absoluteURL gives protocol-relative URLs an https scheme.
func absoluteURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// BaseCDNPath strips the trailing size segment from an avatars CDN URL,
// leaving namespace/group/image. Other URLs are returned without a trailing
// slash.
func BaseCDNPath(u string) string {
	u = strings.TrimRight(absoluteURL(u), "/")
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	rest := cdnHostRe.ReplaceAllString(u, "")
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return u
	}
	host, path := rest[:slash], rest[slash+1:]
	if !strings.HasPrefix(host, "avatars.") {
		return u
	}
	segments := strings.Split(path, "/")
	if len(segments) > 3 {
		segments = segments[:3]
	}
	return "https://" + host + "/" + strings.Join(segments, "/")
}

// withSize substitutes the size placeholders used in URL templates, or
// appends size when the template has none.
func withSize(u, size string) string {
	switch {
	case strings.Contains(u, "{size}"):
		return strings.ReplaceAll(u, "{size}", size)
	case strings.Contains(u, "%s"):
		return strings.ReplaceAll(u, "%s", size)
	default:
		return u
	}
}
