package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type connection interface {
	Channel() (channel, error)
	IsClosed() bool
	Close() error
}

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Publisher holds one broker connection, redialing it once it closes, and
// opens a channel per message. amqp channels are not safe for concurrent
// publishing.
type Publisher struct {
	mu   sync.Mutex
	dial func() (connection, error)
	conn connection
}

func Dial(url string) (*Publisher, error) {
	p := &Publisher{dial: func() (connection, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq dial: %w", err)
		}
		return amqpConnection{conn}, nil
	}}
	conn, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func (p *Publisher) openChannel() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		if err := p.redial(); err != nil {
			return nil, err
		}
	}
	ch, err := p.conn.Channel()
	if errors.Is(err, amqp.ErrClosed) {
		if err := p.redial(); err != nil {
			return nil, err
		}
		ch, err = p.conn.Channel()
	}
	return ch, err
}

// redial must be called with mu held.
func (p *Publisher) redial() error {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	conn, err := p.dial()
	if err != nil {
		p.conn = nil
		return err
	}
	p.conn = conn
	return nil
}

// PublishOrderCreated declares the durable queue and publishes ev as a
// persistent JSON message. Declaring an existing queue is a no-op.
func (p *Publisher) PublishOrderCreated(ctx context.Context, ev OrderCreated) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.openChannel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(OrderCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	return ch.PublishWithContext(ctx, "", OrderCreatedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
