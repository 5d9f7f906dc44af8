package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckarrie/ha-netgear-plus/model"
)

func statusProfile(encoding model.StatusEncoding, ports, offset int) model.Profile {
	return model.Profile{
		ModelID:          "test",
		PortCount:        ports,
		StatusEncoding:   encoding,
		StatusCellOffset: offset,
	}
}

func TestParsePortStatusTableCells(t *testing.T) {
	page := `<html><body><table>
<tr class="portID"><td>Port 1</td><td>x</td><td>Up</td><td>Auto</td><td>1000M Full</td></tr>
<tr class="portID"><td>Port 2</td><td>x</td><td>Aktiv</td><td>Auto</td><td>100M Half</td></tr>
<tr class="portID"><td>Port 3</td><td>x</td><td>Down</td><td>Auto</td><td>No Speed</td></tr>
</table></body></html>`

	status, err := ParsePortStatus(statusProfile(model.StatusTableCells, 3, 2), []byte(page))
	require.NoError(t, err)

	require.Len(t, status, 3)
	assert.Equal(t, model.PortStatus{Connected: true, AutoNegotiation: true, LinkSpeed: model.Link1000M}, status[1])
	// German UI renders "Aktiv" for a linked port
	assert.Equal(t, model.PortStatus{Connected: true, AutoNegotiation: true, LinkSpeed: model.Link100M}, status[2])
	assert.Equal(t, model.PortStatus{Connected: false, AutoNegotiation: true, LinkSpeed: model.LinkDown}, status[3])
}

func TestParsePortStatusRespectsPortNoInput(t *testing.T) {
	page := `<html><body><table>
<tr class="portID">
<td><input type="hidden" name="PORT_NO" value="2"></td><td>x</td><td>Up</td><td>Auto</td><td>1000M</td>
</tr>
</table></body></html>`

	status, err := ParsePortStatus(statusProfile(model.StatusTableCells, 8, 2), []byte(page))
	require.NoError(t, err)

	require.Len(t, status, 1)
	assert.True(t, status[2].Connected)
}

func TestParsePortStatusPortLists(t *testing.T) {
	page := `<html><body>
<div name="isShowPot1"><div>1</div><div><span>UP</span><span>x</span></div></div>
<div name="isShowPot2"><div>2</div><div><span>DOWN</span><span>x</span></div></div>
<input class="Speed" value="1"><input class="Speed" value="1">
<input class="LinkedSpeed" value="1000M full"><input class="LinkedSpeed" value="">
</body></html>`

	status, err := ParsePortStatus(statusProfile(model.StatusPortLists, 2, 0), []byte(page))
	require.NoError(t, err)

	require.Len(t, status, 2)
	assert.Equal(t, model.PortStatus{Connected: true, AutoNegotiation: true, LinkSpeed: model.Link1000M}, status[1])
	assert.Equal(t, model.PortStatus{Connected: false, AutoNegotiation: true, LinkSpeed: model.LinkDown}, status[2])
}

func TestParsePortStatusMalformedPage(t *testing.T) {
	_, err := ParsePortStatus(statusProfile(model.StatusTableCells, 8, 2), []byte(`<html><body></body></html>`))
	assert.True(t, errors.Is(err, model.ErrMalformedPage))
}
