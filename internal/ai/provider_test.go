package ai

import (
	"testing"

	"github.com/keshon/soul-engine/internal/config"
)

func TestDefaultProviderFakeReturnsNil(t *testing.T) {
	p, err := DefaultProvider(&config.Config{AIProvider: "fake"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil provider for fake, got %T", p)
	}
}

func TestDefaultProviderPollinations(t *testing.T) {
	p, err := DefaultProvider(&config.Config{AIProvider: "pollinations"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*PollinationsProvider); !ok {
		t.Errorf("got %T, want *PollinationsProvider", p)
	}
}

func TestDefaultProviderG4F(t *testing.T) {
	p, err := DefaultProvider(&config.Config{AIProvider: "g4f"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*G4FProvider); !ok {
		t.Errorf("got %T, want *G4FProvider", p)
	}
}

func TestDefaultProviderUnsupported(t *testing.T) {
	if _, err := DefaultProvider(&config.Config{AIProvider: "bogus"}); err == nil {
		t.Fatal("expected an error for an unsupported provider")
	}
}
