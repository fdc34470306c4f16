package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisPublisher_Publish(t *testing.T) {
	stream := &fakeStream{}
	p := newRedisPublisher(stream, nil, "audit", 100)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), Event{
		Type:    AccessRequestDecided,
		Actor:   "admin@x.com",
		Subject: "req-1",
		Payload: map[string]interface{}{"status": "approved"},
		At:      at,
	})
	require.NoError(t, err)

	require.Len(t, stream.args, 1)
	args := stream.args[0]
	assert.Equal(t, "audit", args.Stream)
	assert.Equal(t, int64(100), args.MaxLen)
	assert.True(t, args.Approx)

	values, ok := args.Values.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, AccessRequestDecided, values["type"])
	assert.Equal(t, "admin@x.com", values["actor"])
	assert.Equal(t, `{"status":"approved"}`, values["payload"])
	assert.Equal(t, "2025-03-01T12:00:00Z", values["at"])
}

func TestRedisPublisher_PublishError(t *testing.T) {
	stream := &fakeStream{err: errors.New("READONLY")}
	p := newRedisPublisher(stream, nil, "audit", 100)

	err := p.Publish(context.Background(), Event{Type: BiodataCreated})
	assert.ErrorContains(t, err, "READONLY")
	assert.NoError(t, p.Close())
}

func TestNewRedisPublisher_InvalidURL(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), "://bad", "audit", 10)
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: MemberCreated}))
	assert.NoError(t, p.Close())
}
