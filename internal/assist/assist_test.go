package assist

import (
	"context"
	"testing"

	"github.com/voyago/voyago/internal/config"
)

func TestNewRequiresProvider(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), nil, nil); err == nil {
		t.Fatal("New with nil config succeeded")
	}

	cfg := &config.Config{Provider: config.ProviderNone}
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("New without assist provider succeeded")
	}
}
