package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	assert.Equal(t, "p1a7s6s1w2o5r1d240", Merge("password", "1761251240"))
	assert.Equal(t, "aXbYZW", Merge("ab", "XYZW"))
	assert.Equal(t, "secret", Merge("secret", ""))
	assert.Equal(t, "1234", Merge("", "1234"))
	assert.Equal(t, "", Merge("", ""))
}

func TestMergeHash(t *testing.T) {
	assert.Equal(t, "13a680f6c9eedc02dd228ed6014d6231", MergeHash("password", "1761251240"))
	assert.Equal(t, "6fc315b060548b690dd6665100174fe9", MergeHash("testpw", "42"))
	// no seed degrades to a plain MD5 of the password
	assert.Equal(t, "5ebe2294ecd0e0f08eab7690d2a6ee69", MergeHash("secret", ""))
}

func TestHexHMACMD5(t *testing.T) {
	assert.Equal(t, "0b2405254f79fb7deec397a57c0bf619", HexHMACMD5("password"))
	assert.Equal(t, "eae15a118bcbbae5a7932845bfa4d72d", HexHMACMD5("pass123"))
}
