package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const loginPageClassic = `<html>
<head><title>NETGEAR GS108Ev3</title></head>
<body>
<div class="switchInfo">GS108Ev3 - 8-Port Gigabit ProSAFE Plus Switch</div>
<form method="post" action="/login.cgi">
<input type="hidden" id="rand" name="rand" value="1761251240" disabled>
<input type="password" name="password">
</form>
</body></html>`

const loginPageRejected = `<html>
<head><title>NETGEAR GS108Ev3</title></head>
<body>
<input type="hidden" id="err_msg" value="The password is invalid.">
</body></html>`

const loginPageRejectedAlt = `<html><body>
<div class="pwdErrStyle">Das Passwort ist ungültig.</div>
</body></html>`

func TestLoginSeed(t *testing.T) {
	assert.Equal(t, "1761251240", LoginSeed([]byte(loginPageClassic)))
	assert.True(t, HasLoginSeed([]byte(loginPageClassic)))

	assert.Equal(t, "", LoginSeed([]byte(`<html><body><form></form></body></html>`)))
	assert.False(t, HasLoginSeed([]byte(`<html></html>`)))
}

func TestLoginTitle(t *testing.T) {
	assert.Equal(t, "GS108Ev3", LoginTitle([]byte(loginPageClassic)))
	assert.Equal(t, "GS308EP", LoginTitle([]byte(`<title> NETGEAR GS308EP </title>`)))
	assert.Equal(t, "", LoginTitle([]byte(`<title>NETGEAR</title>`)))
}

func TestLoginBanner(t *testing.T) {
	assert.Equal(t, "GS108Ev3 - 8-Port Gigabit ProSAFE Plus Switch", LoginBanner([]byte(loginPageClassic)))
	assert.Equal(t, "", LoginBanner([]byte(`<html></html>`)))
}

func TestGambitToken(t *testing.T) {
	page := `<html><body><form>
<input type="hidden" name="Gambit" value="6787d7d44d7a79777b2b5b">
</form></body></html>`
	assert.Equal(t, "6787d7d44d7a79777b2b5b", GambitToken([]byte(page)))
	assert.Equal(t, "", GambitToken([]byte(loginPageClassic)))
}

func TestClientHash(t *testing.T) {
	page := `<html><body>
<input type="hidden" name="hash" value="33186"></body></html>`
	assert.Equal(t, "33186", ClientHash([]byte(page)))
	assert.Equal(t, "", ClientHash([]byte(loginPageClassic)))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "The password is invalid.", ErrorMessage([]byte(loginPageRejected)))
	assert.Equal(t, "Das Passwort ist ungültig.", ErrorMessage([]byte(loginPageRejectedAlt)))
	assert.Equal(t, "", ErrorMessage([]byte(loginPageClassic)))
}

func TestIsLoginRedirect(t *testing.T) {
	byTitle := `<html><head><title>Redirect to Login</title></head></html>`
	assert.True(t, IsLoginRedirect([]byte(byTitle)))

	byScript := `<html><body><script>
top.location.href = "/wmi/login";
</script></body></html>`
	assert.True(t, IsLoginRedirect([]byte(byScript)))

	assert.False(t, IsLoginRedirect([]byte(loginPageClassic)))
}

func TestStripDuplex(t *testing.T) {
	assert.Equal(t, "1000M", stripDuplex("1000M Full"))
	assert.Equal(t, "100M", stripDuplex("100M Half"))
	assert.Equal(t, "1000M", stripDuplex("1000M"))
}
