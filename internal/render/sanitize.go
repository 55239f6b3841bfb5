package render

import (
	"strings"

	"golang.org/x/net/html"
)

// blockedTags are dropped with their whole subtree.
var blockedTags = map[string]struct{}{
	"base":     {},
	"embed":    {},
	"form":     {},
	"iframe":   {},
	"input":    {},
	"link":     {},
	"meta":     {},
	"noscript": {},
	"object":   {},
	"script":   {},
	"style":    {},
	"textarea": {},
}

// SanitizeHTML strips active content from an article description so it can
// be converted and shown safely. Unparseable input is returned trimmed.
func SanitizeHTML(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type: html.ElementNode,
		Data: "body",
	})
	if err != nil {
		return raw
	}

	var b strings.Builder
	for _, n := range nodes {
		if clean := cleanNode(n); clean != nil {
			_ = html.Render(&b, clean)
		}
	}
	return strings.TrimSpace(b.String())
}

func cleanNode(n *html.Node) *html.Node {
	switch n.Type {
	case html.TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case html.CommentNode, html.DoctypeNode:
		return nil
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if _, blocked := blockedTags[tag]; blocked {
			return nil
		}
		out := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom, Namespace: n.Namespace}
		for _, a := range n.Attr {
			if keepAttr(tag, a) {
				out.Attr = append(out.Attr, a)
			}
		}
		appendCleanChildren(out, n)
		return out
	default:
		out := &html.Node{Type: n.Type, Data: n.Data, Namespace: n.Namespace}
		appendCleanChildren(out, n)
		return out
	}
}

func appendCleanChildren(dst, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if child := cleanNode(c); child != nil {
			dst.AppendChild(child)
		}
	}
}

func keepAttr(tag string, a html.Attribute) bool {
	k := strings.ToLower(strings.TrimSpace(a.Key))
	switch {
	case k == "", strings.HasPrefix(k, "on"), k == "style", k == "srcdoc":
		return false
	case isURLAttr(k):
		return isSafeURL(a.Val, tag, k)
	}
	return true
}

func isURLAttr(k string) bool {
	switch k {
	case "href", "src", "poster", "cite", "action", "formaction", "data":
		return true
	}
	return false
}

func isSafeURL(v, tag, attr string) bool {
	u := strings.ToLower(strings.TrimSpace(v))
	switch {
	case u == "":
		return true
	case strings.HasPrefix(u, "javascript:"), strings.HasPrefix(u, "vbscript:"):
		return false
	case strings.HasPrefix(u, "data:"):
		return tag == "img" && attr == "src" && strings.HasPrefix(u, "data:image/")
	}
	return true
}
