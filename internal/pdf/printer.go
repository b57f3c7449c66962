// Package pdf prints rendered resume pages to PDF with headless Chrome.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTimeout bounds one print job including browser start-up
const DefaultTimeout = 60 * time.Second

// Paper dimensions in inches
const (
	a4Width      = 8.27
	a4Height     = 11.69
	letterWidth  = 8.5
	letterHeight = 11.0
)

// PrintError represents a failure to produce a PDF
type PrintError struct {
	Message string
	Cause   error
}

func (e *PrintError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf error: %s", e.Message)
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}

// Printer turns a standalone HTML page into PDF bytes
type Printer struct {
	chromePath string
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Printer
type Option func(*Printer)

// WithChromePath sets the browser binary. Empty uses CHROME_PATH or the
// chromedp default lookup.
func WithChromePath(path string) Option {
	return func(p *Printer) {
		p.chromePath = path
	}
}

// WithTimeout bounds each print job
func WithTimeout(d time.Duration) Option {
	return func(p *Printer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger for print diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(p *Printer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPrinter creates a Printer
func NewPrinter(opts ...Option) *Printer {
	p := &Printer{
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.chromePath == "" {
		p.chromePath = os.Getenv("CHROME_PATH")
	}
	return p
}

// PaperSize returns the paper width and height in inches for size.
// Unknown sizes print as A4.
func PaperSize(size types.PageSize) (width, height float64) {
	if size == types.PageSizeLetter {
		return letterWidth, letterHeight
	}
	return a4Width, a4Height
}

// Print loads html in headless Chrome and prints it on paper of the given size
func (p *Printer) Print(ctx context.Context, html string, size types.PageSize) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, p.timeout)
	defer cancel()

	// Chrome loads the page from disk so relative resources resolve
	tmpDir, err := os.MkdirTemp("", "resume-pdf-")
	if err != nil {
		return nil, &PrintError{Message: "failed to create temp dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &PrintError{Message: "failed to write page", Cause: err}
	}

	width, height := PaperSize(size)
	p.logger.Debug("printing pdf", "page_size", size, "width_in", width, "height_in", height)

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &PrintError{Message: "browser print failed", Cause: err}
	}

	p.logger.Debug("pdf printed", "bytes", len(pdfBuf))
	return pdfBuf, nil
}
