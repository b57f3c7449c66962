package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatURL_StripsWWW(t *testing.T) {
	assert.Equal(t, "example.com", FormatURL("https://www.example.com/about"))
}

func TestFormatURL_KeepsSubdomain(t *testing.T) {
	assert.Equal(t, "alexrivera.dev", FormatURL("https://alexrivera.dev"))
	assert.Equal(t, "blog.example.com", FormatURL("http://blog.example.com:8080/x"))
}

func TestFormatURL_NotAURL(t *testing.T) {
	assert.Equal(t, "alexrivera.dev", FormatURL("alexrivera.dev"))
	assert.Equal(t, "not a url", FormatURL("not a url"))
}

func TestFormatURL_ParseFailure(t *testing.T) {
	assert.Equal(t, "http://[::1", FormatURL("http://[::1"))
}
