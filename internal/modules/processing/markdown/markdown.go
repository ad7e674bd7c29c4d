// Package markdown renders the markdown fields of projects, the bio and blog
// bodies into HTML fragments.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in the source is dropped; goldmark's unsafe mode stays off.
var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	containerBlockRegex  = regexp.MustCompile(`(?ms)^\s*:::\s*(gallery|banner)\s*(?:\{(.*?)\})?\s*\n(.*?)\n\s*:::\s*(?:\n|$)`)
	imageTagRegex        = regexp.MustCompile(`(?is)<img\s+[^>]*>`)
	imageAttrRegex       = regexp.MustCompile(`([a-zA-Z:_-]+)\s*=\s*"([^"]*)"`)
	figureParagraphRegex = regexp.MustCompile(`(?is)<p>\s*(<figure>[\s\S]*?</figure>)\s*</p>`)
	classNameRegex       = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Render converts markdown to an HTML fragment.
func Render(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return rewriteImages(renderBlocks(text))
}

// HTML is Render typed for html/template.
func HTML(text string) template.HTML {
	return template.HTML(Render(text))
}

func convert(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var out bytes.Buffer
	if err := engine.Convert([]byte(text), &out); err != nil {
		return "<p>" + template.HTMLEscapeString(text) + "</p>"
	}
	return out.String()
}

// renderBlocks converts ::: gallery / ::: banner {class} fences into divs
// and the text between them as plain markdown.
func renderBlocks(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range containerBlockRegex.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(convert(text[last:m[0]]))
		class := "container"
		if strings.ToLower(text[m[2]:m[3]]) == "banner" {
			class += " banner"
			if m[4] >= 0 {
				if extra := classNames(text[m[4]:m[5]]); extra != "" {
					class += " " + extra
				}
			}
		}
		b.WriteString(`<div class="` + class + `">`)
		b.WriteString(convert(strings.TrimSpace(text[m[6]:m[7]])))
		b.WriteString("</div>\n")
		last = m[1]
	}
	b.WriteString(convert(text[last:]))
	return b.String()
}

func classNames(raw string) string {
	var out []string
	for _, part := range strings.Fields(raw) {
		if classNameRegex.MatchString(part) {
			out = append(out, part)
		}
	}
	return strings.Join(out, " ")
}

// rewriteImages adds lazy loading and turns images whose alt starts with
// "!" into captioned figures.
func rewriteImages(html string) string {
	out := imageTagRegex.ReplaceAllStringFunc(html, func(tag string) string {
		attrs := imageAttrs(tag)
		src := strings.TrimSpace(attrs["src"])
		if src == "" {
			return tag
		}
		alt := strings.TrimSpace(attrs["alt"])
		img := `<img src="` + src + `" alt="` + strings.TrimPrefix(alt, "!") + `" loading="lazy"/>`
		if !strings.HasPrefix(alt, "!") {
			return img
		}
		caption := strings.TrimSpace(strings.TrimPrefix(alt, "!"))
		if caption == "" {
			caption = attrs["title"]
		}
		return "<figure>" + img + "<figcaption>" + caption + "</figcaption></figure>"
	})
	return figureParagraphRegex.ReplaceAllString(out, "$1")
}

// imageAttrs reads attributes from goldmark output, which is already escaped.
func imageAttrs(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range imageAttrRegex.FindAllStringSubmatch(tag, -1) {
		attrs[strings.ToLower(m[1])] = m[2]
	}
	return attrs
}
