package parser

import (
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/ckarrie/ha-netgear-plus/model"
)

// connectedLabels are the link-up labels observed across firmware
// languages (German and English UIs).
var connectedLabels = map[string]bool{
	"Aktiv":     true,
	"Up":        true,
	"UP":        true,
	"CONNECTED": true,
}

// autoNegotiationLabels mark a port whose speed is not pinned in the UI.
var autoNegotiationLabels = map[string]bool{
	"Auto": true,
}

// ParsePortStatus extracts link state, configured mode and negotiated speed
// per port from the status page.
func ParsePortStatus(profile model.Profile, body []byte) (map[int]model.PortStatus, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("status page: %w", model.ErrMalformedPage)
	}

	var status map[int]model.PortStatus
	switch profile.StatusEncoding {
	case model.StatusPortLists:
		status = parseStatusPortLists(doc, profile)
	default:
		status = parseStatusTableCells(doc, profile)
	}

	if len(status) == 0 {
		return nil, fmt.Errorf("status page yielded no ports: %w", model.ErrMalformedPage)
	}
	return status, nil
}

// parseStatusTableCells reads tr.portID rows. The port index comes from the
// row's PORT_NO input where present and from row order otherwise; the
// state/mode/speed cells start at the profile's cell offset.
func parseStatusTableCells(doc *goquery.Document, profile model.Profile) map[int]model.PortStatus {
	status := make(map[int]model.PortStatus)
	off := profile.StatusCellOffset

	doc.Find("tr.portID").Each(func(i int, row *goquery.Selection) {
		port := i + 1
		if v := row.Find(`input[name="PORT_NO"]`).First().AttrOr("value", ""); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				port = n
			}
		}
		if port < 1 || port > profile.PortCount {
			return
		}

		cells := row.Find("td")
		if cells.Length() < off+3 {
			return
		}
		state := textTrim(cells.Eq(off))
		mode := textTrim(cells.Eq(off + 1))
		speed := stripDuplex(cells.Eq(off + 2).Text())

		status[port] = model.PortStatus{
			Connected:       connectedLabels[state],
			AutoNegotiation: autoNegotiationLabels[mode],
			LinkSpeed:       model.ParseLinkSpeed(speed),
		}
	})
	return status
}

// parseStatusPortLists reads the GS30x dashboard: one isShowPotN block per
// port for the link state plus parallel Speed/LinkedSpeed input lists.
func parseStatusPortLists(doc *goquery.Document, profile model.Profile) map[int]model.PortStatus {
	status := make(map[int]model.PortStatus)
	modes := doc.Find("input.Speed")
	speeds := doc.Find("input.LinkedSpeed")

	for port := 1; port <= profile.PortCount; port++ {
		block := doc.Find(fmt.Sprintf(`div[name="isShowPot%d"]`, port))
		if block.Length() == 0 {
			continue
		}
		state := textTrim(block.Children().Eq(1).Children().Eq(0))

		mode := modes.Eq(port - 1).AttrOr("value", "")
		if mode == "1" {
			mode = "Auto"
		}
		speed := stripDuplex(speeds.Eq(port - 1).AttrOr("value", ""))

		status[port] = model.PortStatus{
			Connected:       connectedLabels[state],
			AutoNegotiation: autoNegotiationLabels[mode],
			LinkSpeed:       model.ParseLinkSpeed(speed),
		}
	}
	return status
}
