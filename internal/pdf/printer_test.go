package pdf

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPaperSize(t *testing.T) {
	w, h := PaperSize(types.PageSizeA4)
	assert.Equal(t, 8.27, w)
	assert.Equal(t, 11.69, h)

	w, h = PaperSize(types.PageSizeLetter)
	assert.Equal(t, 8.5, w)
	assert.Equal(t, 11.0, h)

	w, _ = PaperSize("legal")
	assert.Equal(t, 8.27, w)
}

func TestNewPrinter_Options(t *testing.T) {
	p := NewPrinter(WithChromePath("/opt/chrome"), WithTimeout(5*time.Second))
	assert.Equal(t, "/opt/chrome", p.chromePath)
	assert.Equal(t, 5*time.Second, p.timeout)
}

func TestNewPrinter_ChromePathFromEnv(t *testing.T) {
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	p := NewPrinter()
	assert.Equal(t, "/usr/bin/chromium", p.chromePath)
	assert.Equal(t, DefaultTimeout, p.timeout)
}

func TestPrintError_Unwrap(t *testing.T) {
	cause := errors.New("no browser")
	err := &PrintError{Message: "browser print failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "pdf error: browser print failed: no browser", err.Error())
}
