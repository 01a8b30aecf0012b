package sitename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/go-pass-keeper/models"
)

func TestNew_BareHost(t *testing.T) {
	site, err := New("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", site.Full)
	assert.Equal(t, "example.com", site.Reg)
}

func TestNew_FullURLWithWWWAndCase(t *testing.T) {
	site, err := New("https://www.Example.COM/login")
	require.NoError(t, err)
	assert.Equal(t, "example.com", site.Full)
	assert.Equal(t, "example.com", site.Reg)
}

func TestNew_Subdomain(t *testing.T) {
	site, err := New("accounts.google.com")
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", site.Full)
	assert.Equal(t, "google.com", site.Reg)
}

func TestNew_CoUKSuffix(t *testing.T) {
	site, err := New("www.example.co.uk")
	require.NoError(t, err)
	assert.Equal(t, "example.co.uk", site.Full)
	assert.Equal(t, "example.co.uk", site.Reg)
}

func TestNew_Empty(t *testing.T) {
	_, err := New("   ")
	assert.ErrorIs(t, err, models.ErrEmptySiteName)
}

func TestNew_ContainsWhitespace(t *testing.T) {
	_, err := New("example.com/some path")
	assert.ErrorIs(t, err, models.ErrSiteNameContainsWhitespace)
}

func TestFromUnchecked(t *testing.T) {
	site := FromUnchecked("", "exa")
	assert.Equal(t, models.SiteName{Full: "", Reg: "exa"}, site)
}

func TestNewUserID(t *testing.T) {
	id, err := NewUserID("  alice  ")
	require.NoError(t, err)
	assert.Equal(t, models.UserID("alice"), id)

	_, err = NewUserID("   ")
	assert.ErrorIs(t, err, models.ErrEmptyUserID)
}

func TestNewUserPW(t *testing.T) {
	pw, err := NewUserPW("  s3cret!  ")
	require.NoError(t, err)
	assert.Equal(t, models.UserPW("s3cret!"), pw)

	_, err = NewUserPW("")
	assert.ErrorIs(t, err, models.ErrEmptyUserPW)
}
