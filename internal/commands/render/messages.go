package rendercmd

import (
	"bytes"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	renderPageMessageType      = "sections.render.page"
	invalidateCacheMessageType = "sections.render.invalidate_cache"

	maxReasonLength = 256
)

// RenderPageCommand renders a JSON section list and writes the HTML to Output.
type RenderPageCommand struct {
	// Page holds the section list: an array, {"modules": [...]}, or one module.
	Page []byte `json:"page"`
	// Output receives the rendered fragment.
	Output io.Writer `json:"-"`
	// Source names where the page came from, for logging only.
	Source string `json:"source,omitempty"`
}

// Type implements command.Message.
func (RenderPageCommand) Type() string { return renderPageMessageType }

// Validate ensures a page payload and an output are present.
func (cmd RenderPageCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Page, validation.By(func(value any) error {
			page, _ := value.([]byte)
			if len(bytes.TrimSpace(page)) == 0 {
				return validation.NewError("sections.render.page.page_required", "page payload is required")
			}
			return nil
		})),
		validation.Field(&cmd.Output, validation.By(func(value any) error {
			if writer, _ := value.(io.Writer); writer == nil {
				return validation.NewError("sections.render.page.output_required", "output writer is required")
			}
			return nil
		})),
	)
}

// InvalidateRenderCacheCommand drops cached section fragments.
type InvalidateRenderCacheCommand struct {
	// Reason is logged with the invalidation, e.g. the file that changed.
	Reason string `json:"reason,omitempty"`
}

// Type implements command.Message.
func (InvalidateRenderCacheCommand) Type() string { return invalidateCacheMessageType }

// Validate bounds the optional reason.
func (cmd InvalidateRenderCacheCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reason, validation.By(func(value any) error {
			reason, _ := value.(string)
			if len(strings.TrimSpace(reason)) > maxReasonLength {
				return validation.NewError("sections.render.invalidate_cache.reason_too_long", "reason must be at most 256 characters")
			}
			return nil
		})),
	)
}
