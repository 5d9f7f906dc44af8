package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckarrie/ha-netgear-plus/model"
)

func statsProfile(encoding model.StatsEncoding, ports int) model.Profile {
	return model.Profile{ModelID: "test", PortCount: ports, StatsEncoding: encoding}
}

func TestParseStatisticsTableCells(t *testing.T) {
	page := `<html><body><table>
<tr class="portID"><td>Port 1</td><td>178338972</td><td>78887832</td><td>0</td></tr>
<tr class="portID"><td>Port 2</td><td>4294967290</td><td>10</td><td>3</td></tr>
</table></body></html>`

	at := time.Now()
	sample, err := ParseStatistics(statsProfile(model.StatsTableCells, 2), []byte(page), at)
	require.NoError(t, err)

	assert.Equal(t, at, sample.CapturedAt)
	assert.Equal(t, 0, sample.SkippedPorts)
	require.Len(t, sample.Ports, 2)
	assert.Equal(t, model.PortCounters{RxBytes: 178338972, TxBytes: 78887832}, sample.Ports[1])
	assert.Equal(t, model.PortCounters{RxBytes: 4294967290, TxBytes: 10, CRCErrors: 3}, sample.Ports[2])
}

func TestParseStatisticsSkipsBrokenRows(t *testing.T) {
	page := `<html><body><table>
<tr class="portID"><td>Port 1</td><td>100</td><td>200</td><td>0</td></tr>
<tr class="portID"><td>Port 2</td><td>garbage</td><td>10</td><td>0</td></tr>
<tr class="portID"><td>Port 3</td><td>300</td></tr>
</table></body></html>`

	sample, err := ParseStatistics(statsProfile(model.StatsTableCells, 3), []byte(page), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, sample.SkippedPorts)
	require.Len(t, sample.Ports, 1)
	assert.Equal(t, model.PortCounters{RxBytes: 100, TxBytes: 200}, sample.Ports[1])
}

func TestParseStatisticsHexInputFallback(t *testing.T) {
	// newer firmwares of the classic models drop the table for hidden hex inputs
	page := `<html><body>
<input type="hidden" name="rxPkt" value="0A">
<input type="hidden" name="txpkt" value="FF">
<input type="hidden" name="crcPkt" value="0">
<input type="hidden" name="rxPkt" value="10">
<input type="hidden" name="txpkt" value="20">
<input type="hidden" name="crcPkt" value="1">
</body></html>`

	sample, err := ParseStatistics(statsProfile(model.StatsTableCells, 2), []byte(page), time.Now())
	require.NoError(t, err)

	require.Len(t, sample.Ports, 2)
	assert.Equal(t, model.PortCounters{RxBytes: 10, TxBytes: 255}, sample.Ports[1])
	assert.Equal(t, model.PortCounters{RxBytes: 16, TxBytes: 32, CRCErrors: 1}, sample.Ports[2])
}

func TestParseStatisticsTurnoverPairs(t *testing.T) {
	page := `<html><body><table>
<tr class="portID">
<td><input type="hidden" value="1"><input type="hidden" value="5"></td>
<td><input type="hidden" value="0"><input type="hidden" value="100"></td>
<td><input type="hidden" value="0"><input type="hidden" value="0"></td>
</tr>
</table></body></html>`

	sample, err := ParseStatistics(statsProfile(model.StatsTurnoverPairs, 1), []byte(page), time.Now())
	require.NoError(t, err)

	require.Len(t, sample.Ports, 1)
	// turnover counter contributes the high 32 bits
	assert.Equal(t, uint64(1)<<32+5, sample.Ports[1].RxBytes)
	assert.Equal(t, uint64(100), sample.Ports[1].TxBytes)
}

func TestParseStatisticsSplitHiLo(t *testing.T) {
	page := `<html><body><div id="settingsStatusContainer">
<input type="hidden" value="2"><input type="hidden" value="7">
<input type="hidden" value="0"><input type="hidden" value="50">
<input type="hidden" value="0"><input type="hidden" value="4">
<input type="hidden" value="0"><input type="hidden" value="9">
<input type="hidden" value="0"><input type="hidden" value="0">
<input type="hidden" value="0"><input type="hidden" value="0">
</div></body></html>`

	sample, err := ParseStatistics(statsProfile(model.StatsSplitHiLo, 2), []byte(page), time.Now())
	require.NoError(t, err)

	require.Len(t, sample.Ports, 2)
	assert.Equal(t, uint64(2)<<32+7, sample.Ports[1].RxBytes)
	assert.Equal(t, uint64(50), sample.Ports[1].TxBytes)
	assert.Equal(t, uint64(4), sample.Ports[1].CRCErrors)
	assert.Equal(t, uint64(9), sample.Ports[2].RxBytes)
}

func TestParseStatisticsMalformedPage(t *testing.T) {
	_, err := ParseStatistics(statsProfile(model.StatsTableCells, 8), []byte(`<html><body>maintenance</body></html>`), time.Now())
	assert.True(t, errors.Is(err, model.ErrMalformedPage))

	_, err = ParseStatistics(statsProfile(model.StatsSplitHiLo, 8), []byte(`<html></html>`), time.Now())
	assert.True(t, errors.Is(err, model.ErrMalformedPage))
}
