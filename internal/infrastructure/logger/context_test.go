package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithContext(t *testing.T) {
	base := zap.NewNop()
	ctx := WithContext(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRequestID(t *testing.T) {
	ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-1")
	assert.NotNil(t, enriched)
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestWithCustomerID(t *testing.T) {
	ctx, enriched := WithCustomerID(context.Background(), zap.NewNop(), "cust-1")
	assert.NotNil(t, enriched)
	assert.Equal(t, "cust-1", GetCustomerID(ctx))
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}
