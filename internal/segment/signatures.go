package segment

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/maildeck/mailsift/internal/patterns"
)

// ExtractSignatures pulls trailing signature image clusters out of
// already quote-stripped content. Candidates are embedded (cid:) images,
// Outlook "imageNNN" attachments, logo/signature-named images and small
// declared-size decorative images. Candidates with nothing but markup and
// whitespace between them are grouped into one wrapper fragment; readable
// text or a content image between two candidates starts a new group, so
// images that bracket body prose stay separate entries.
func ExtractSignatures(body string) (string, []string) {
	if strings.TrimSpace(body) == "" {
		return body, nil
	}
	doc, ok := parseFragment(body)
	if !ok {
		return body, nil
	}

	imgs := doc.Find("img")
	if imgs.Length() == 0 {
		return body, nil
	}

	type imgInfo struct {
		sel       *goquery.Selection
		candidate bool
	}
	infos := make(map[*html.Node]imgInfo, imgs.Length())
	imgs.Each(func(_ int, s *goquery.Selection) {
		infos[s.Get(0)] = imgInfo{sel: s, candidate: isSignatureImage(s)}
	})

	// Walk the body in document order. A run of candidates is closed by a
	// non-candidate image or by any non-whitespace text encountered between
	// two candidates; bare separators like <br> keep the run open.
	var groups [][]*goquery.Selection
	var run []*goquery.Selection
	closeRun := func() {
		if len(run) > 0 {
			groups = append(groups, run)
			run = nil
		}
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.ElementNode && n.Data == "img":
			if info, found := infos[n]; found {
				if info.candidate {
					run = append(run, info.sel)
				} else {
					closeRun()
				}
			}
			return
		case n.Type == html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				closeRun()
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	bodySel := doc.Find("body")
	if bodySel.Length() == 0 {
		return body, nil
	}
	walk(bodySel.Get(0))
	closeRun()
	if len(groups) == 0 {
		return body, nil
	}

	signatures := make([]string, 0, len(groups))
	for _, g := range groups {
		var b strings.Builder
		b.WriteString(`<div class="signature-images">`)
		for _, s := range g {
			if markup, err := goquery.OuterHtml(s); err == nil {
				b.WriteString(markup)
			}
		}
		b.WriteString(`</div>`)
		signatures = append(signatures, b.String())
	}
	for _, g := range groups {
		for _, s := range g {
			s.Remove()
		}
	}

	clean, ok := bodyHTML(doc)
	if !ok {
		return body, nil
	}
	return clean, signatures
}

func isSignatureImage(s *goquery.Selection) bool {
	src := s.AttrOr("src", "")
	alt := s.AttrOr("alt", "")

	if patterns.ReCIDSource.MatchString(src) {
		return true
	}
	if patterns.ReInlineImageName.MatchString(src) {
		return true
	}
	if patterns.ReLogoOrSignature.MatchString(src) || patterns.ReLogoOrSignature.MatchString(alt) {
		return true
	}

	w, okW := intAttr(s, "width")
	h, okH := intAttr(s, "height")
	if okW && okH && w*h < patterns.SmallImageArea {
		return true
	}
	return false
}

func intAttr(s *goquery.Selection, name string) (int, bool) {
	v, ok := s.Attr(name)
	if !ok {
		return 0, false
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
