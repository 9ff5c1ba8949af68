package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

const (
	rootModule     = "sections"
	modulesModule  = "sections.modules"
	richTextModule = "sections.richtext"
	routesModule   = "sections.routes"
	commandsModule = "sections.commands"
)

const (
	fieldModuleType = "module_type"
	fieldModuleKey  = "module_key"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ModulesLogger returns the logger namespace reserved for the module resolver.
func ModulesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, modulesModule)
}

// RichTextLogger returns the logger namespace reserved for rich text rendering.
func RichTextLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, richTextModule)
}

// RoutesLogger returns the logger namespace reserved for route resolution.
func RoutesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, routesModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithModuleContext enriches the logger with the section type and key being
// rendered. Empty values are ignored.
func WithModuleContext(logger interfaces.Logger, moduleType, moduleKey string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(moduleType); trimmed != "" {
		fields[fieldModuleType] = trimmed
	}
	if trimmed := strings.TrimSpace(moduleKey); trimmed != "" {
		fields[fieldModuleKey] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
