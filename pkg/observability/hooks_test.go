package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	o := NoopOperationHooks{}
	o.OnOperationStart(ctx, "align", 3)
	o.OnOperationComplete(ctx, "align", time.Millisecond, nil)
	o.OnRenderStart(ctx, []string{"svg"})
	o.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Operation() should return NoopOperationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customOps := &testOperationHooks{}
	SetOperationHooks(customOps)
	if Operation() != customOps {
		t.Error("SetOperationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Reset() should restore NoopOperationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testOperationHooks{}
	SetOperationHooks(custom)
	SetOperationHooks(nil)

	if Operation() != custom {
		t.Error("SetOperationHooks(nil) should be ignored")
	}

	Reset()
}

type testOperationHooks struct{ NoopOperationHooks }
type testCacheHooks struct{ NoopCacheHooks }
