package urlinfo

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxMessageRunes = 200

// serverMessage extracts a human readable message from an error body. It
// understands {"message": ...}-style JSON and HTML error pages served by the
// hosting proxy; anything else yields "".
func serverMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return ""
		}
		for _, key := range []string{"message", "detail", "error"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return limitRunes(strings.TrimSpace(s), maxMessageRunes)
			}
		}
		return ""
	}
	if trimmed[0] == '<' {
		return limitRunes(htmlText(trimmed), maxMessageRunes)
	}
	return ""
}

// htmlText prefers the document title and falls back to the collapsed body text.
func htmlText(raw []byte) string {
	doc, err := nethtml.Parse(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var title string
	var body strings.Builder
	var walk func(n *nethtml.Node, inBody bool)
	walk = func(n *nethtml.Node, inBody bool) {
		if n.Type == nethtml.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			case atom.Title:
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case atom.Body:
				inBody = true
			}
		}
		if n.Type == nethtml.TextNode && inBody {
			body.WriteString(n.Data)
			body.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inBody)
		}
	}
	walk(doc, false)

	if title != "" {
		return strings.Join(strings.Fields(title), " ")
	}
	return strings.Join(strings.Fields(body.String()), " ")
}

func limitRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
