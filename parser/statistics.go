package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ckarrie/ha-netgear-plus/model"
)

// ParseStatistics extracts the raw per-port counters from the statistics
// page. Rows that fail to parse are skipped and recorded in the sample; a
// page yielding no ports at all is rejected as malformed so the caller can
// keep its previous baseline.
func ParseStatistics(profile model.Profile, body []byte, at time.Time) (model.RawSample, error) {
	doc, err := parse(body)
	if err != nil {
		return model.RawSample{}, fmt.Errorf("statistics page: %w", model.ErrMalformedPage)
	}

	sample := model.RawSample{
		CapturedAt: at,
		Ports:      make(map[int]model.PortCounters, profile.PortCount),
	}

	switch profile.StatsEncoding {
	case model.StatsTurnoverPairs:
		parseTurnoverPairs(doc, profile, &sample)
	case model.StatsSplitHiLo:
		parseSplitHiLo(doc, profile, &sample)
	default:
		parseTableCells(doc, profile, &sample)
	}

	if len(sample.Ports) == 0 {
		return model.RawSample{}, fmt.Errorf("statistics page yielded no ports: %w", model.ErrMalformedPage)
	}
	return sample, nil
}

// parseTableCells handles the classic layout: one tr.portID row per port
// with decimal rx/tx/crc text cells. Newer firmwares of the same models
// replace the table with hidden hex inputs; detect that structurally and
// switch over.
func parseTableCells(doc *goquery.Document, profile model.Profile, sample *model.RawSample) {
	rows := doc.Find("tr.portID")
	if rows.Length() == 0 {
		parseHexInputs(doc, profile, sample)
		return
	}
	rows.Each(func(i int, row *goquery.Selection) {
		port := i + 1
		if port > profile.PortCount {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			sample.SkippedPorts++
			return
		}
		rx, errRx := parseCounter(cells.Eq(1).Text(), 10)
		tx, errTx := parseCounter(cells.Eq(2).Text(), 10)
		crc, errCrc := parseCounter(cells.Eq(3).Text(), 10)
		if errRx != nil || errTx != nil || errCrc != nil {
			sample.SkippedPorts++
			return
		}
		sample.Ports[port] = model.PortCounters{RxBytes: rx, TxBytes: tx, CRCErrors: crc}
	})
}

// parseHexInputs handles the hidden-input layout of the v2 firmwares:
// parallel rxPkt/txpkt/crcPkt inputs holding hex values.
func parseHexInputs(doc *goquery.Document, profile model.Profile, sample *model.RawSample) {
	rx := doc.Find(`input[name="rxPkt"]`)
	tx := doc.Find(`input[name="txpkt"]`)
	crc := doc.Find(`input[name="crcPkt"]`)

	for i := 0; i < rx.Length() && i < profile.PortCount; i++ {
		rxV, errRx := parseCounter(rx.Eq(i).AttrOr("value", ""), 16)
		txV, errTx := parseCounter(tx.Eq(i).AttrOr("value", ""), 16)
		crcV, errCrc := parseCounter(crc.Eq(i).AttrOr("value", ""), 16)
		if errRx != nil || errTx != nil || errCrc != nil {
			sample.SkippedPorts++
			continue
		}
		sample.Ports[i+1] = model.PortCounters{RxBytes: rxV, TxBytes: txV, CRCErrors: crcV}
	}
}

// parseTurnoverPairs handles per-row input pairs: a 32-bit turnover counter
// and the current value, combined into the full 64-bit reading.
func parseTurnoverPairs(doc *goquery.Document, profile model.Profile, sample *model.RawSample) {
	doc.Find("tr.portID").Each(func(i int, row *goquery.Selection) {
		port := i + 1
		if port > profile.PortCount {
			return
		}
		inputs := row.Find("input")
		if inputs.Length() < 6 {
			sample.SkippedPorts++
			return
		}
		values := make([]uint64, 6)
		for j := 0; j < 6; j++ {
			v, err := parseCounter(inputs.Eq(j).AttrOr("value", ""), 10)
			if err != nil {
				sample.SkippedPorts++
				return
			}
			values[j] = v
		}
		sample.Ports[port] = model.PortCounters{
			RxBytes:   values[0]<<32 + values[1],
			TxBytes:   values[2]<<32 + values[3],
			CRCErrors: values[4]<<32 + values[5],
		}
	})
}

// parseSplitHiLo handles the GS30x dashboard layout: a flat run of hidden
// inputs under the settings container, six per port, holding decimal
// high/low halves for rx, tx and crc.
func parseSplitHiLo(doc *goquery.Document, profile model.Profile, sample *model.RawSample) {
	inputs := doc.Find("#settingsStatusContainer input")
	for port := 1; port <= profile.PortCount; port++ {
		base := (port - 1) * 6
		if base+5 >= inputs.Length() {
			break
		}
		values := make([]uint64, 6)
		ok := true
		for j := 0; j < 6; j++ {
			v, err := parseCounter(inputs.Eq(base+j).AttrOr("value", ""), 10)
			if err != nil {
				ok = false
				break
			}
			values[j] = v
		}
		if !ok {
			sample.SkippedPorts++
			continue
		}
		sample.Ports[port] = model.PortCounters{
			RxBytes:   values[0]<<32 + values[1],
			TxBytes:   values[2]<<32 + values[3],
			CRCErrors: values[4]<<32 + values[5],
		}
	}
}

func parseCounter(text string, base int) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(text), base, 64)
}
