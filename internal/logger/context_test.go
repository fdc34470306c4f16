package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	defer Init("test")

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserEmail(ctx, "a@x.com")

	CtxInfo(ctx, "hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"user_email":"a@x.com"`)
	assert.Contains(t, out, `"k":"v"`)
}

func TestFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "", GetUserEmail(context.Background()))
	assert.NotNil(t, FromContext(context.Background()))
}
