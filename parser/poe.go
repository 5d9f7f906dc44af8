package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ckarrie/ha-netgear-plus/model"
)

// poeEnabledLabels are the admin-on labels across UI languages.
var poeEnabledLabels = map[string]bool{
	"enable": true,
	"aktiv":  true,
}

// ParsePoEConfig extracts the per-port PoE admin state from the PoE
// configuration page.
func ParsePoEConfig(profile model.Profile, body []byte) (map[int]bool, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("poe config page: %w", model.ErrMalformedPage)
	}

	admin := make(map[int]bool)
	switch profile.PoEEncoding {
	case model.PoEPortWrap:
		doc.Find(`div[class*="port-wrap"] span[class*="admin-state"]`).Each(func(i int, s *goquery.Selection) {
			admin[i+1] = poeEnabledLabels[strings.ToLower(textTrim(s))]
		})
	default:
		doc.Find("input#hidPortPwr").Each(func(i int, s *goquery.Selection) {
			admin[i+1] = s.AttrOr("value", "") == "1"
		})
	}

	if len(admin) == 0 {
		return nil, fmt.Errorf("poe config page yielded no ports: %w", model.ErrMalformedPage)
	}
	return admin, nil
}

// ParsePoEStatus extracts the delivered output power per PoE port from the
// PoE status page. A port delivering no power reads as 0.0 watts.
func ParsePoEStatus(profile model.Profile, body []byte) (map[int]model.PoEStatus, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("poe status page: %w", model.ErrMalformedPage)
	}

	status := make(map[int]model.PoEStatus)
	switch profile.PoEEncoding {
	case model.PoEPortWrap:
		doc.Find(`div[class*="port-wrap"] p[class*="OutputPower-text"]`).Each(func(i int, s *goquery.Selection) {
			watts := parseWatts(textTrim(s))
			status[i+1] = model.PoEStatus{PowerWatts: watts, Delivering: watts > 0}
		})
	default:
		doc.Find(`li[class*="poe_port_list_item"] div[class*="poe_port_status"]`).Each(func(i int, s *goquery.Selection) {
			// the sixth span inside the status block holds the wattage
			watts := parseWatts(textTrim(s.Find("span").Eq(5)))
			status[i+1] = model.PoEStatus{PowerWatts: watts, Delivering: watts > 0}
		})
	}

	if len(status) == 0 {
		return nil, fmt.Errorf("poe status page yielded no ports: %w", model.ErrMalformedPage)
	}
	return status, nil
}

func parseWatts(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v
}
