// Package parser extracts typed records from the semi-structured HTML pages
// of the switch web console. Page layout varies by model, firmware and UI
// language; extraction keys off structural anchors (row classes, cell and
// input ordering by port index) where possible and falls back to bilingual
// label matching where it is not. All layout knowledge lives here, behind
// the typed contracts of the model package.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parse(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// LoginSeed returns the server-provided seed value from the login form, or
// "" when the firmware renders none.
func LoginSeed(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	return doc.Find("input#rand").First().AttrOr("value", "")
}

// HasLoginSeed reports whether the login form carries a seed input.
func HasLoginSeed(body []byte) bool { return LoginSeed(body) != "" }

// LoginTitle returns the login page title with the vendor name stripped,
// which newer firmwares set to the model name.
func LoginTitle(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	title := doc.Find("title").First().Text()
	return strings.TrimSpace(strings.ReplaceAll(title, "NETGEAR", ""))
}

// LoginBanner returns the switch-info banner older firmwares render on the
// login page, e.g. "GS308E - 8-Port Gigabit Ethernet Smart Managed Plus
// Switch".
func LoginBanner(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("div.switchInfo").First().Text())
}

// GambitToken returns the session token GS31x-style models hide in the
// login response form.
func GambitToken(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	return doc.Find(`input[name="Gambit"]`).First().AttrOr("value", "")
}

// ClientHash returns the anti-CSRF hash newer pages require on POST forms.
func ClientHash(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	return doc.Find(`input[name="hash"]`).First().AttrOr("value", "")
}

// ErrorMessage returns the login error text a rejected login renders, in
// either of the two layouts observed.
func ErrorMessage(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	if msg := doc.Find("input#err_msg").First().AttrOr("value", ""); msg != "" {
		return msg
	}
	return strings.TrimSpace(doc.Find("div.pwdErrStyle").First().Text())
}

// IsLoginRedirect reports whether a response body is the login/redirect
// page served in place of the requested content after session eviction.
func IsLoginRedirect(body []byte) bool {
	doc, err := parse(body)
	if err != nil {
		return false
	}
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	if title == "redirect to login" {
		return true
	}
	redirect := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), `top.location.href = "/wmi/login"`) {
			redirect = true
			return false
		}
		return true
	})
	return redirect
}

func textTrim(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

var duplexRe = regexp.MustCompile(`(?i)full|half`)

// stripDuplex removes the duplex suffix from a link speed label
// ("1000M Full" -> "1000M").
func stripDuplex(text string) string {
	return strings.TrimSpace(duplexRe.ReplaceAllString(text, ""))
}
