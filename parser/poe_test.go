package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckarrie/ha-netgear-plus/model"
)

func TestParsePoEConfigHiddenInputs(t *testing.T) {
	page := `<html><body>
<input type="hidden" id="hidPortPwr" value="1">
<input type="hidden" id="hidPortPwr" value="0">
<input type="hidden" id="hidPortPwr" value="1">
</body></html>`

	profile := model.Profile{ModelID: "GS308EP", PoEEncoding: model.PoEHiddenInputs}
	admin, err := ParsePoEConfig(profile, []byte(page))
	require.NoError(t, err)

	require.Len(t, admin, 3)
	assert.True(t, admin[1])
	assert.False(t, admin[2])
	assert.True(t, admin[3])
}

func TestParsePoEConfigPortWrap(t *testing.T) {
	page := `<html><body>
<div class="port-wrap"><span class="admin-state">Enable</span></div>
<div class="port-wrap"><span class="admin-state">Disable</span></div>
<div class="port-wrap"><span class="admin-state">Aktiv</span></div>
</body></html>`

	profile := model.Profile{ModelID: "GS316EP", PoEEncoding: model.PoEPortWrap}
	admin, err := ParsePoEConfig(profile, []byte(page))
	require.NoError(t, err)

	require.Len(t, admin, 3)
	assert.True(t, admin[1])
	assert.False(t, admin[2])
	assert.True(t, admin[3])
}

func TestParsePoEStatusPortList(t *testing.T) {
	page := `<html><body><ul>
<li class="poe_port_list_item">
<div class="poe_port_status">
<span>1</span><span>x</span><span>x</span><span>x</span><span>x</span><span>4.5</span>
</div>
</li>
<li class="poe_port_list_item">
<div class="poe_port_status">
<span>2</span><span>x</span><span>x</span><span>x</span><span>x</span><span>0.0</span>
</div>
</li>
</ul></body></html>`

	profile := model.Profile{ModelID: "GS308EP", PoEEncoding: model.PoEHiddenInputs}
	status, err := ParsePoEStatus(profile, []byte(page))
	require.NoError(t, err)

	require.Len(t, status, 2)
	assert.Equal(t, model.PoEStatus{PowerWatts: 4.5, Delivering: true}, status[1])
	assert.Equal(t, model.PoEStatus{PowerWatts: 0, Delivering: false}, status[2])
}

func TestParsePoEStatusPortWrap(t *testing.T) {
	page := `<html><body>
<div class="port-wrap"><p class="OutputPower-text">7.2</p></div>
<div class="port-wrap"><p class="OutputPower-text">0.0</p></div>
</body></html>`

	profile := model.Profile{ModelID: "GS316EP", PoEEncoding: model.PoEPortWrap}
	status, err := ParsePoEStatus(profile, []byte(page))
	require.NoError(t, err)

	require.Len(t, status, 2)
	assert.Equal(t, model.PoEStatus{PowerWatts: 7.2, Delivering: true}, status[1])
	assert.Equal(t, model.PoEStatus{PowerWatts: 0, Delivering: false}, status[2])
}

func TestParsePoEMalformedPage(t *testing.T) {
	profile := model.Profile{ModelID: "GS308EP", PoEEncoding: model.PoEHiddenInputs}

	_, err := ParsePoEConfig(profile, []byte(`<html></html>`))
	assert.True(t, errors.Is(err, model.ErrMalformedPage))

	_, err = ParsePoEStatus(profile, []byte(`<html></html>`))
	assert.True(t, errors.Is(err, model.ErrMalformedPage))
}
