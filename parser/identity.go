package parser

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/ckarrie/ha-netgear-plus/model"
)

// ParseIdentity extracts the switch identity fields from the info page.
// Labels are matched bilingually because the console localizes them; the
// classic tbl1 layout is tried structurally first.
func ParseIdentity(profile model.Profile, body []byte) (model.Identity, error) {
	doc, err := parse(body)
	if err != nil {
		return model.Identity{}, fmt.Errorf("info page: %w", model.ErrMalformedPage)
	}

	var id model.Identity
	switch profile.IdentityEncoding {
	case model.IdentityDashboard:
		id = parseIdentityDashboard(doc)
	default:
		id = parseIdentityLabeled(doc)
	}
	id.Model = profile.ModelID

	if id.Name == "" && id.Serial == "" && id.Firmware == "" {
		return model.Identity{}, fmt.Errorf("info page yielded no identity fields: %w", model.ErrMalformedPage)
	}
	return id, nil
}

func parseIdentityLabeled(doc *goquery.Document) model.Identity {
	id := model.Identity{
		Name: firstInputValue(doc,
			"input#switch_name", `input[name="switch_name"]`, `input[name="switchName"]`),
		Serial:     labeledValue(doc, "Serial Number", "Seriennummer"),
		Firmware:   labeledValue(doc, "Firmware Version", "Firmwareversion"),
		Bootloader: textTrim(doc.Find("td#loader").First()),
		MAC:        labeledValue(doc, "MAC Address", "MAC-Adresse"),
	}

	// classic tbl1 layout without label cells: fixed row positions, the
	// firmware row moved between firmware generations
	if id.Serial == "" {
		id.Serial = textTrim(doc.Find("table#tbl1 tr:nth-child(3) td:nth-child(2)").First())
	}
	if id.Firmware == "" {
		id.Firmware = textTrim(doc.Find("table#tbl1 tr:nth-child(6) td:nth-child(2)").First())
	}
	if id.Firmware == "" {
		id.Firmware = textTrim(doc.Find("table#tbl1 tr:nth-child(4) td:nth-child(2)").First())
	}
	return id
}

// parseIdentityDashboard reads the GS30x dashboard, which labels its info
// fields with ml-codes instead of text (ml198 serial, ml089 firmware).
func parseIdentityDashboard(doc *goquery.Document) model.Identity {
	return model.Identity{
		Name:     textTrim(doc.Find("#switch_name").First()),
		Serial:   mlCodedValue(doc, "ml198"),
		Firmware: mlCodedValue(doc, "ml089"),
		MAC:      mlCodedValue(doc, "ml197"),
	}
}

func firstInputValue(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v := doc.Find(sel).First().AttrOr("value", ""); v != "" {
			return v
		}
	}
	return ""
}

// labeledValue finds a label cell and returns the text of its following
// sibling cell.
func labeledValue(doc *goquery.Document, labels ...string) string {
	for _, label := range labels {
		for _, tag := range []string{"td", "p"} {
			sel := doc.Find(fmt.Sprintf(`%s:contains("%s")`, tag, label)).First()
			if sel.Length() == 0 {
				continue
			}
			if v := textTrim(sel.Next()); v != "" {
				return v
			}
		}
	}
	return ""
}

func mlCodedValue(doc *goquery.Document, code string) string {
	sel := doc.Find(fmt.Sprintf(`span:contains("%s")`, code)).First()
	if sel.Length() == 0 {
		return ""
	}
	return textTrim(sel.Parent().Next())
}
