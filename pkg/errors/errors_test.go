package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestKinds(t *testing.T) {
	cause := stderrors.New("HTTP 403 Forbidden")

	tests := []struct {
		name string
		err  error
		kind Kind
		msg  string
	}{
		{"permission", Permission("❌ nope"), KindPermission, "❌ nope"},
		{"validation", Validation("❌ bad color"), KindValidation, "❌ bad color"},
		{"external", External("❌ failed", cause), KindExternal, "❌ failed"},
		{"wrapped", fmt.Errorf("ban: %w", Validation("❌ bad")), KindValidation, "❌ bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce, ok := AsCommandError(tt.err)
			if !ok {
				t.Fatalf("AsCommandError(%v) = false, want true", tt.err)
			}
			if ce.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", ce.Kind, tt.kind)
			}
			if ce.Message != tt.msg {
				t.Errorf("Message = %q, want %q", ce.Message, tt.msg)
			}
		})
	}

	if !stderrors.Is(External("❌ failed", cause), cause) {
		t.Error("External error should unwrap to its cause")
	}
	if KindOf(stderrors.New("plain")) != 0 {
		t.Error("KindOf(plain error) should be 0")
	}
	if got := KindExternal.String(); got != "external" {
		t.Errorf("KindExternal.String() = %q", got)
	}
}

func TestErrorHandlerShutdown(t *testing.T) {
	h := newErrorHandler("", nil)
	h.checkInterval = 5 * time.Millisecond
	h.resetInterval = time.Hour

	shutdown := make(chan struct{})
	exited := make(chan int, 1)
	h.shutdownFunc = func() { close(shutdown) }
	h.exitFunc = func(code int) { exited <- code }

	for i := 0; i < 16; i++ {
		h.IncrementError()
	}
	h.start()
	defer h.Stop()

	select {
	case code := <-exited:
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not shut down after exceeding the error limit")
	}

	select {
	case <-shutdown:
	default:
		t.Error("shutdown func was not called")
	}
}

func TestErrorHandlerBelowLimit(t *testing.T) {
	h := newErrorHandler("", nil)
	for i := 0; i < 15; i++ {
		h.IncrementError()
	}
	if h.overLimit() {
		t.Error("15 errors should not exceed the limit")
	}
	if h.Count() != 15 {
		t.Errorf("Count() = %d, want 15", h.Count())
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := newErrorHandler("", nil)
	prev := handler
	handler = h
	defer func() { handler = prev }()

	func() {
		defer RecoverMiddleware()()
		panic("nil map write")
	}()

	if h.Count() != 1 {
		t.Errorf("Count() after recovered panic = %d, want 1", h.Count())
	}
}
