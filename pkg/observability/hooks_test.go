package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	l := NoopLayoutHooks{}
	l.OnCommit("add", 1)
	l.OnReject("move", 1, "OVERLAP")

	s := NoopStoreHooks{}
	s.OnSave(context.Background(), "file", 12, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	custom := &recordingLayoutHooks{}
	SetLayoutHooks(custom)
	if Layout() != custom {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customStore := &recordingStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	SetLayoutHooks(nil)
	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestMultiLayoutHooks(t *testing.T) {
	a, b := &recordingLayoutHooks{}, &recordingLayoutHooks{}
	m := MultiLayoutHooks{a, b}

	m.OnCommit("add", 3)
	m.OnReject("rotate", 3, "OUT_OF_BOUNDS")

	for i, h := range []*recordingLayoutHooks{a, b} {
		if h.commits != 1 || h.rejects != 1 {
			t.Errorf("member %d: commits=%d rejects=%d, want 1/1", i, h.commits, h.rejects)
		}
		if h.lastCode != "OUT_OF_BOUNDS" {
			t.Errorf("member %d: lastCode = %q", i, h.lastCode)
		}
	}
}

func TestMultiStoreHooks(t *testing.T) {
	a, b := &recordingStoreHooks{}, &recordingStoreHooks{}
	MultiStoreHooks{a, b}.OnSave(context.Background(), "redis", 4, time.Millisecond, nil)
	if a.saves != 1 || b.saves != 1 {
		t.Errorf("saves = %d/%d, want 1/1", a.saves, b.saves)
	}
}

type recordingLayoutHooks struct {
	commits, rejects int
	lastCode         string
}

func (r *recordingLayoutHooks) OnCommit(string, int) { r.commits++ }
func (r *recordingLayoutHooks) OnReject(_ string, _ int, code string) {
	r.rejects++
	r.lastCode = code
}

type recordingStoreHooks struct{ saves int }

func (r *recordingStoreHooks) OnSave(context.Context, string, int, time.Duration, error) { r.saves++ }
