package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	serveHost  string
	servePort  int
	serveNoPDF bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live preview server",
	Long:  `Start an HTTP server that edits the resume through REST endpoints and streams a live HTML preview.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveNoPDF, "no-pdf", false, "Disable PDF export")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if serveHost != "" {
		sess.cfg.Host = serveHost
	}
	if servePort != 0 {
		sess.cfg.Port = servePort
	}

	catalog, err := sess.catalog()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return err
	}

	autosave := sess.service.EnableAutosave(sess.cfg.AutosaveDelay())
	defer autosave.Stop()

	cfg := server.Config{
		Addr:     sess.cfg.Addr(),
		Store:    sess.store,
		Service:  sess.service,
		Autosave: autosave,
		Renderer: renderer,
		Catalog:  catalog,
		Logger:   sess.logger,
	}
	if !serveNoPDF {
		cfg.Printer = pdf.NewPrinter(
			pdf.WithChromePath(sess.cfg.ChromePath),
			pdf.WithTimeout(sess.cfg.PDFTimeout()),
			pdf.WithLogger(sess.logger),
		)
	}

	if sess.cfg.Watch {
		if err := startWatch(ctx, sess); err != nil {
			return err
		}
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// startWatch reloads the document whenever the data file changes on disk
func startWatch(ctx context.Context, sess *session) error {
	fileStore, ok := sess.port.(*storage.FileStore)
	if !ok {
		return errors.New("watch requires the file storage backend")
	}

	go func() {
		err := fileStore.Watch(ctx, func(doc *types.Document) {
			sess.logger.Info("data file changed on disk, reloading", "path", fileStore.Path())
			sess.store.SetState(types.FullPartial(doc))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			sess.logger.Error("file watch stopped", "error", err)
		}
	}()
	return nil
}
