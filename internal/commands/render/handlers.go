package rendercmd

import (
	"context"
	"errors"
	"html/template"
	"io"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/modules"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

const (
	renderOperation     = "render.page"
	invalidateOperation = "render.invalidate_cache"

	codePageDecodeFailed = "SECTIONS_PAGE_DECODE_FAILED"
	codePageWriteFailed  = "SECTIONS_PAGE_WRITE_FAILED"
)

// ErrResolverRequired is returned when handlers are built without a resolver.
var ErrResolverRequired = errors.New("render command: resolver is required")

// Resolver is the subset of *modules.Resolver the handlers use.
type Resolver interface {
	ResolveAll(ctx context.Context, list []modules.Module) (template.HTML, error)
	InvalidateCache(ctx context.Context) error
}

var (
	_ Resolver                                        = (*modules.Resolver)(nil)
	_ command.Commander[RenderPageCommand]            = (*RenderPageHandler)(nil)
	_ command.Commander[InvalidateRenderCacheCommand] = (*InvalidateCacheHandler)(nil)
)

// RenderPageHandler decodes a page and writes its rendered sections.
type RenderPageHandler struct {
	inner *commands.Handler[RenderPageCommand]
}

// NewRenderPageHandler binds the handler to resolver.
func NewRenderPageHandler(resolver Resolver, logger interfaces.Logger, opts ...commands.HandlerOption[RenderPageCommand]) *RenderPageHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RenderPageCommand) error {
		list, err := modules.DecodeBytes(msg.Page)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "page payload could not be decoded").
				WithTextCode(codePageDecodeFailed)
		}

		html, err := resolver.ResolveAll(ctx, list)
		if err != nil {
			return err
		}

		written, err := io.WriteString(msg.Output, string(html))
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryCommand, "rendered page could not be written").
				WithTextCode(codePageWriteFailed)
		}

		logging.WithFields(logger, map[string]any{
			"source":   msg.Source,
			"sections": len(list),
			"bytes":    written,
		}).Info("render.command.page.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderPageCommand]{
		commands.WithLogger[RenderPageCommand](logger),
		commands.WithOperation[RenderPageCommand](renderOperation),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &RenderPageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RenderPageCommand].
func (h *RenderPageHandler) Execute(ctx context.Context, msg RenderPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InvalidateCacheHandler clears the resolver fragment cache.
type InvalidateCacheHandler struct {
	inner *commands.Handler[InvalidateRenderCacheCommand]
}

// NewInvalidateCacheHandler binds the handler to resolver.
func NewInvalidateCacheHandler(resolver Resolver, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateRenderCacheCommand]) *InvalidateCacheHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InvalidateRenderCacheCommand) error {
		if err := resolver.InvalidateCache(ctx); err != nil {
			return err
		}
		logger.Info("render.command.cache.invalidated", "reason", msg.Reason)
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateRenderCacheCommand]{
		commands.WithLogger[InvalidateRenderCacheCommand](logger),
		commands.WithOperation[InvalidateRenderCacheCommand](invalidateOperation),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &InvalidateCacheHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[InvalidateRenderCacheCommand].
func (h *InvalidateCacheHandler) Execute(ctx context.Context, msg InvalidateRenderCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}

// HandlerSet groups the render command handlers.
type HandlerSet struct {
	Render     *RenderPageHandler
	Invalidate *InvalidateCacheHandler
}

// NewHandlerSet builds both handlers with loggers from provider.
func NewHandlerSet(resolver Resolver, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	logger := commands.CommandLogger(provider, "render")
	return &HandlerSet{
		Render:     NewRenderPageHandler(resolver, logger),
		Invalidate: NewInvalidateCacheHandler(resolver, logger),
	}, nil
}
