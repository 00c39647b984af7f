package browser

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFetchAfterShutdown(t *testing.T) {
	p := New(1, "", time.Second, nil)
	p.Shutdown()
	p.Shutdown()

	if _, err := p.Fetch(context.Background(), "about:blank"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestNewClampsSize(t *testing.T) {
	p := New(0, "", time.Second, nil)
	if p.size != 1 || cap(p.tabs) != 1 {
		t.Errorf("expected a single tab, got size %d", p.size)
	}
}
