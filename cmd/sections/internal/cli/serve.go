package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	sections "github.com/goliatone/go-sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

const debounceDuration = 200 * time.Millisecond

var pageShell = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
{{.Body}}
</body>
</html>
`))

func newServeCommand(a *app) *cobra.Command {
	var (
		input string
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a rendered page locally, re-rendering when it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, input, port, watch)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "page JSON file")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to serve the page on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the input changes")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) serve(ctx context.Context, input string, port int, watch bool) error {
	page := newPageServer(a.module, input, a.logger)
	if err := page.reload(ctx); err != nil {
		return err
	}

	if watch {
		stopWatch, err := watchInput(ctx, input, a.logger, func(reason string) {
			if err := a.module.InvalidateCache(ctx, reason); err != nil {
				a.logger.Error("cli.serve.invalidate_failed", "error", err)
			}
			if err := page.reload(ctx); err != nil {
				a.logger.Error("cli.serve.reload_failed", "error", err)
			}
		})
		if err != nil {
			return err
		}
		defer stopWatch()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           page,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	a.logger.Info("cli.serve.listening", "addr", "http://localhost"+server.Addr, "input", input, "watch", watch)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// pageServer holds the last successful render of a page file.
type pageServer struct {
	module *sections.Module
	input  string
	logger interfaces.Logger

	mu   sync.RWMutex
	html []byte
}

func newPageServer(module *sections.Module, input string, logger interfaces.Logger) *pageServer {
	return &pageServer{module: module, input: input, logger: logger}
}

// reload renders the input file. The previous render is kept on failure.
func (p *pageServer) reload(ctx context.Context) error {
	page, err := readInput(p.input)
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := p.module.RenderPage(ctx, page, &body); err != nil {
		return fmt.Errorf("render %s: %w", p.input, err)
	}

	var doc bytes.Buffer
	err = pageShell.Execute(&doc, struct {
		Title string
		Body  template.HTML
	}{
		Title: filepath.Base(p.input),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return fmt.Errorf("render shell: %w", err)
	}

	p.mu.Lock()
	p.html = doc.Bytes()
	p.mu.Unlock()
	p.logger.Info("cli.serve.rendered", "input", p.input, "bytes", doc.Len())
	return nil
}

func (p *pageServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	p.mu.RLock()
	html := p.html
	p.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = w.Write(html)
}

// watchInput calls onChange, debounced, whenever input is written, created
// or renamed. The parent directory is watched so editors that replace the
// file are still seen.
func watchInput(ctx context.Context, input string, logger interfaces.Logger, onChange func(reason string)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	target := filepath.Clean(input)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", input, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		var (
			mu     sync.Mutex
			timer  *time.Timer
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()
		fire := func(reason string) func() {
			return func() {
				mu.Lock()
				stopped := closed
				mu.Unlock()
				if !stopped && ctx.Err() == nil {
					onChange(reason)
				}
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("cli.serve.change_detected", "path", event.Name, "op", event.Op.String())
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				reason := fmt.Sprintf("%s %s", event.Op.String(), event.Name)
				timer = time.AfterFunc(debounceDuration, fire(reason))
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("cli.serve.watch_error", "error", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}, nil
}
