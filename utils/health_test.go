package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	h := NewHealthMonitor(client, nil, 0)
	status := h.Check(context.Background())
	assert.True(t, status.Redis)
	assert.False(t, status.Mongo)
	assert.Equal(t, status, h.Status())

	mr.Close()
	assert.False(t, h.Check(context.Background()).Redis)
}
