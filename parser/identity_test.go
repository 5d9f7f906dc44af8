package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckarrie/ha-netgear-plus/model"
)

func TestParseIdentityLabeled(t *testing.T) {
	page := `<html><body>
<input type="text" id="switch_name" name="switch_name" value="basement-switch">
<table>
<tr><td>Serial Number</td><td>4BC1295VF0AA1</td></tr>
<tr><td>MAC Address</td><td>bc:a5:11:a0:b9:c3</td></tr>
<tr><td>Firmware Version</td><td>V2.06.24GR</td></tr>
<tr><td>Bootloader Version</td><td id="loader">V1.00.03</td></tr>
</table>
</body></html>`

	profile := model.Profile{ModelID: "GS108Ev3", IdentityEncoding: model.IdentityLabeled}
	id, err := ParseIdentity(profile, []byte(page))
	require.NoError(t, err)

	assert.Equal(t, "basement-switch", id.Name)
	assert.Equal(t, "GS108Ev3", id.Model)
	assert.Equal(t, "4BC1295VF0AA1", id.Serial)
	assert.Equal(t, "V2.06.24GR", id.Firmware)
	assert.Equal(t, "V1.00.03", id.Bootloader)
	assert.Equal(t, "bc:a5:11:a0:b9:c3", id.MAC)
}

func TestParseIdentityLabeledGerman(t *testing.T) {
	page := `<html><body>
<input type="text" name="switch_name" value="keller">
<table>
<tr><td>Seriennummer</td><td>4BC1295VF0AA1</td></tr>
<tr><td>Firmwareversion</td><td>V2.06.24GR</td></tr>
</table>
</body></html>`

	profile := model.Profile{ModelID: "GS108Ev3", IdentityEncoding: model.IdentityLabeled}
	id, err := ParseIdentity(profile, []byte(page))
	require.NoError(t, err)

	assert.Equal(t, "keller", id.Name)
	assert.Equal(t, "4BC1295VF0AA1", id.Serial)
	assert.Equal(t, "V2.06.24GR", id.Firmware)
}

func TestParseIdentityLabeledStructuralFallback(t *testing.T) {
	// firmwares without label cells: fixed row positions inside tbl1
	page := `<html><body>
<input type="text" name="switchName" value="attic">
<table id="tbl1">
<tr><td>a</td><td>GS105E</td></tr>
<tr><td>b</td><td>x</td></tr>
<tr><td>c</td><td>SER123456</td></tr>
<tr><td>d</td><td>V1.6.0.17</td></tr>
</table>
</body></html>`

	profile := model.Profile{ModelID: "GS105E", IdentityEncoding: model.IdentityLabeled}
	id, err := ParseIdentity(profile, []byte(page))
	require.NoError(t, err)

	assert.Equal(t, "attic", id.Name)
	assert.Equal(t, "SER123456", id.Serial)
	assert.Equal(t, "V1.6.0.17", id.Firmware)
}

func TestParseIdentityDashboard(t *testing.T) {
	page := `<html><body>
<span id="switch_name">office-poe</span>
<div><span>ml198</span></div><div>6CC1345TF0BB2</div>
<div><span>ml089</span></div><div>V1.0.0.8</div>
<div><span>ml197</span></div><div>94:a6:7e:2a:d5:11</div>
</body></html>`

	profile := model.Profile{ModelID: "GS308EP", IdentityEncoding: model.IdentityDashboard}
	id, err := ParseIdentity(profile, []byte(page))
	require.NoError(t, err)

	assert.Equal(t, "office-poe", id.Name)
	assert.Equal(t, "GS308EP", id.Model)
	assert.Equal(t, "6CC1345TF0BB2", id.Serial)
	assert.Equal(t, "V1.0.0.8", id.Firmware)
	assert.Equal(t, "94:a6:7e:2a:d5:11", id.MAC)
}

func TestParseIdentityMalformedPage(t *testing.T) {
	profile := model.Profile{ModelID: "GS108Ev3", IdentityEncoding: model.IdentityLabeled}
	_, err := ParseIdentity(profile, []byte(`<html><body>loading...</body></html>`))
	assert.True(t, errors.Is(err, model.ErrMalformedPage))
}
