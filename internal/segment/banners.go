package segment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/maildeck/mailsift/internal/patterns"
)

// ExtractBanners removes gateway-inserted caution/external-sender banners
// and returns them as trimmed plain text, in encounter order. Container
// elements are matched by class or warning background color, then the
// fixed phrase patterns run over what remains. Quoted prose that merely
// mentions "caution" is not touched: the phrase patterns are anchored to
// the banner wording.
func ExtractBanners(body string) (string, []string) {
	if strings.TrimSpace(body) == "" {
		return body, nil
	}

	var banners []string
	clean := body

	if doc, ok := parseFragment(body); ok {
		marked := map[*html.Node]bool{}
		var hits []*goquery.Selection
		doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
			n := s.Get(0)
			if hasMarkedAncestor(n, marked) {
				return
			}
			if patterns.IsBannerClass(s.AttrOr("class", "")) || patterns.IsBannerStyle(s.AttrOr("style", "")) {
				marked[n] = true
				hits = append(hits, s)
			}
		})
		for _, s := range hits {
			if text := strings.TrimSpace(s.Text()); text != "" {
				banners = append(banners, text)
			}
			s.Remove()
		}
		if h, ok := bodyHTML(doc); ok {
			clean = h
		}
	}

	for _, re := range patterns.BannerPhrases {
		for _, m := range re.FindAllString(clean, -1) {
			if text := strings.TrimSpace(m); text != "" {
				banners = append(banners, text)
			}
		}
		clean = re.ReplaceAllString(clean, "")
	}

	return clean, banners
}
