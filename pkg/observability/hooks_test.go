package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnEditStart(ctx, 2)
	p.OnEditComplete(ctx, 2, time.Millisecond, nil)
	p.OnLayoutStart(ctx, "circular", 12)
	p.OnLayoutComplete(ctx, "circular", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnLayoutStart(ctx, "linear", 3)
	h.OnLayoutComplete(ctx, "linear", time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"png"}, time.Millisecond, errors.New("too large"))
	h.OnCacheHit(ctx, "artifact")
	h.OnResponse(ctx, "POST", "/v1/render", 500, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"layout started", "layout done", "render failed", "too large", "cache hit", "status=500"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheMiss(context.Background(), "layout")
	h.OnResponse(context.Background(), "GET", "/healthz", 200, time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
