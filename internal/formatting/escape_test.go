package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeText_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeText(""))
}

func TestEscapeText_NoSpecialCharacters(t *testing.T) {
	text := "Senior Backend Engineer"
	assert.Equal(t, text, EscapeText(text))
}

func TestEscapeText_ScriptTag(t *testing.T) {
	result := EscapeText("<script>alert('x')</script>")
	assert.Equal(t, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", result)
	assert.NotContains(t, result, "<")
}

func TestEscapeText_Ampersand(t *testing.T) {
	assert.Equal(t, "R&amp;D", EscapeText("R&D"))
}

func TestEscapeText_Quotes(t *testing.T) {
	assert.Equal(t, "&#34;quoted&#34;", EscapeText(`"quoted"`))
}

func TestEscapeText_UnicodeCharacters(t *testing.T) {
	text := "résumé • naïve 📍"
	assert.Equal(t, text, EscapeText(text))
}

func TestSafeHref_HTTPURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a?b=1&amp;c=2", SafeHref("https://example.com/a?b=1&c=2"))
}

func TestSafeHref_Empty(t *testing.T) {
	assert.Equal(t, "", SafeHref("   "))
}

func TestSafeHref_JavascriptScheme(t *testing.T) {
	assert.Equal(t, "#", SafeHref("javascript:alert(1)"))
	assert.Equal(t, "#", SafeHref("  JavaScript:alert(1)"))
	assert.Equal(t, "#", SafeHref("java\tscript:alert(1)"))
}

func TestSafeHref_DataScheme(t *testing.T) {
	assert.Equal(t, "#", SafeHref("data:text/html,<script>alert(1)</script>"))
}

func TestSafeHref_AttributeBreakout(t *testing.T) {
	result := SafeHref(`https://example.com/" onmouseover="alert(1)`)
	assert.NotContains(t, result, `"`)
}
