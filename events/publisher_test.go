package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
	closed    int
	declErr   error
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, f.declErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed++
	return nil
}

type fakeConn struct {
	ch     *fakeChannel
	chErr  error
	closed bool
	closes int
}

func (f *fakeConn) Channel() (channel, error) {
	if f.chErr != nil {
		return nil, f.chErr
	}
	return f.ch, nil
}

func (f *fakeConn) IsClosed() bool { return f.closed }

func (f *fakeConn) Close() error {
	f.closes++
	f.closed = true
	return nil
}

// newPublisher starts connected to conns[0]; each redial hands out the
// next conn until they run out.
func newPublisher(conns ...*fakeConn) (*Publisher, *int) {
	dials := 0
	rest := conns[1:]
	p := &Publisher{conn: conns[0], dial: func() (connection, error) {
		if dials >= len(rest) {
			return nil, errors.New("broker unreachable")
		}
		c := rest[dials]
		dials++
		return c, nil
	}}
	return p, &dials
}

func TestPublishOrderCreated(t *testing.T) {
	ch := &fakeChannel{}
	p, _ := newPublisher(&fakeConn{ch: ch})

	ev := OrderCreated{
		OrderID:    "65a000000000000000000001",
		Email:      "a@b.com",
		ProductIDs: []string{"bk1"},
		TotalPrice: 14.99,
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.PublishOrderCreated(context.Background(), ev))
	require.NoError(t, p.PublishOrderCreated(context.Background(), ev))

	assert.Equal(t, []string{OrderCreatedQueue, OrderCreatedQueue}, ch.declared)
	assert.Equal(t, []string{OrderCreatedQueue, OrderCreatedQueue}, ch.keys)
	assert.Equal(t, 2, ch.closed)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)

	var got OrderCreated
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, ev, got)
}

func TestPublishRecoversAfterDeclareFailure(t *testing.T) {
	ch := &fakeChannel{declErr: errors.New("transient")}
	p, _ := newPublisher(&fakeConn{ch: ch})

	err := p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: "1"})
	require.Error(t, err)
	assert.Empty(t, ch.published)

	ch.declErr = nil
	require.NoError(t, p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: "2"}))
	assert.Len(t, ch.published, 1)
	assert.Len(t, ch.declared, 2)
}

func TestPublishRedialsClosedConnection(t *testing.T) {
	first := &fakeConn{ch: &fakeChannel{}}
	second := &fakeChannel{}
	p, dials := newPublisher(first, &fakeConn{ch: second})

	first.closed = true
	require.NoError(t, p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: "1"}))
	assert.Equal(t, 1, *dials)
	assert.Len(t, second.published, 1)
}

func TestPublishRedialsOnChannelErrClosed(t *testing.T) {
	first := &fakeConn{chErr: amqp.ErrClosed}
	second := &fakeChannel{}
	p, _ := newPublisher(first, &fakeConn{ch: second})

	require.NoError(t, p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: "1"}))
	assert.Equal(t, 1, first.closes)
	assert.Len(t, second.published, 1)
}

func TestPublishBrokerDown(t *testing.T) {
	first := &fakeConn{ch: &fakeChannel{}}
	p, _ := newPublisher(first)

	first.closed = true
	err := p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unreachable")

	// a later publish dials again instead of reusing a dead connection
	err = p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: "2"})
	require.Error(t, err)
}
