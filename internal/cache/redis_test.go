package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		addr    string
		wantNil bool
	}{
		{"host and port", mr.Addr(), false},
		{"redis url", "redis://" + mr.Addr() + "/0", false},
		{"invalid url", "redis://localhost:notaport", true},
		{"unreachable", "127.0.0.1:1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.addr)
			if tt.wantNil {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			defer c.Close()
			assert.NoError(t, c.Set(context.Background(), "k", "v", 0).Err())
		})
	}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())
	_ = GetClient().Close()
}
