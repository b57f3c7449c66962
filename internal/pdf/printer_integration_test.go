//go:build integration
// +build integration

package pdf

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireChrome(t *testing.T) {
	t.Helper()
	if os.Getenv("CHROME_PATH") != "" {
		return
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("Chrome not available, skipping PDF integration test")
}

func TestPrinter_PrintsRenderedPage(t *testing.T) {
	requireChrome(t)

	doc := types.NewEmptyDocument()
	doc.Personal.FullName = "Alex Rivera"
	doc.Meta.PageSize = types.PageSizeLetter

	page, err := rendering.MustNewRenderer().RenderPage(doc)
	require.NoError(t, err)

	out, err := NewPrinter().Print(context.Background(), page, doc.Meta.PageSize)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
