package discovery

import (
	"bytes"
	"net/url"
	gopath "path"
	"strings"

	"golang.org/x/net/html"
)

// imageExtensions lists the raster formats the listing fallback accepts.
// Matching is case-insensitive on the decoded path, ignoring any query
// or fragment suffix.
var imageExtensions = map[string]bool{
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".gif":      true,
	".webp":     true,
	".bmp":      true,
	".aseprite": true,
	".ase":      true,
}

// extractImageRefs walks an HTML directory listing and returns the
// decoded paths of anchor hrefs that look like image files, deduplicated
// by path, in document order.
func extractImageRefs(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		// html.Parse 对残缺文档非常宽容，走到这里基本是读错了东西
		return nil
	}

	var out []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if ref, ok := imageRef(attr.Val); ok && !seen[ref] {
					seen[ref] = true
					out = append(out, ref)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return out
}

// imageRef strips query/fragment from an href, decodes percent escapes,
// and reports whether the remaining path carries an image extension.
func imageRef(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Path == "" {
		return "", false
	}
	ext := strings.ToLower(gopath.Ext(u.Path))
	if !imageExtensions[ext] {
		return "", false
	}
	return u.Path, true
}
