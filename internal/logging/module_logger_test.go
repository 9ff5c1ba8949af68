package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "sections.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, modulesModule)

	if len(provider.requested) != 1 || provider.requested[0] != modulesModule {
		t.Fatalf("expected module %s, got %v", modulesModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != modulesModule {
		t.Fatalf("expected module field %s, got %v", modulesModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedLoggersRequestTheirNamespace(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		expect string
	}{
		{"modules", ModulesLogger, modulesModule},
		{"richtext", RichTextLogger, richTextModule},
		{"routes", RoutesLogger, routesModule},
		{"commands", CommandsLogger, commandsModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.expect {
				t.Fatalf("expected %s request, got %v", tc.expect, provider.requested)
			}
		})
	}
}

func TestWithModuleContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithModuleContext(rec, " textBlock ", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one field set, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldModuleType] != "textBlock" {
		t.Fatalf("expected trimmed module type, got %v", rec.fields[0][fieldModuleType])
	}
	if _, ok := rec.fields[0][fieldModuleKey]; ok {
		t.Fatalf("expected empty module key to be skipped")
	}

	_ = WithModuleContext(rec, "", "")
	if len(rec.fields) != 1 {
		t.Fatalf("expected no fields applied for empty context, got %d", len(rec.fields))
	}
}
