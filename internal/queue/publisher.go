package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// dialTimeout bounds one connection attempt to the broker.
	dialTimeout = 2 * time.Second
	// sendTimeout bounds one publish on an open channel.
	sendTimeout = 2 * time.Second
	// DefaultBuffer is the number of events held while the broker is slow.
	DefaultBuffer = 256
)

var (
	// ErrQueueFull is returned when the buffer is full; the event is dropped.
	ErrQueueFull = errors.New("login event buffer full")
	// ErrPublisherClosed is returned after Close.
	ErrPublisherClosed = errors.New("login event publisher closed")
)

// Publisher publishes LoginEvents to LoginQueueName.  PublishLogin only
// enqueues; one background goroutine owns the connection, dials lazily and
// re-dials after a failure, so a slow or dead broker never holds up a
// caller.
type Publisher struct {
	url    string
	log    zerolog.Logger
	events chan LoginEvent
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup

	// owned by the run goroutine
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher starts the background sender.  Call Close to stop it.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
	p := newPublisher(url, DefaultBuffer, log)
	p.wg.Add(1)
	go p.run()
	return p
}

func newPublisher(url string, buffer int, log zerolog.Logger) *Publisher {
	return &Publisher{
		url:    url,
		log:    log,
		events: make(chan LoginEvent, buffer),
		done:   make(chan struct{}),
	}
}

// PublishLogin enqueues ev without waiting on the broker.
func (p *Publisher) PublishLogin(ctx context.Context, ev LoginEvent) error {
	select {
	case <-p.done:
		return ErrPublisherClosed
	default:
	}
	select {
	case p.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (p *Publisher) run() {
	defer p.wg.Done()
	defer p.reset()
	for {
		select {
		case <-p.done:
			return
		case ev := <-p.events:
			if err := p.send(ev); err != nil {
				p.log.Warn().Err(err).Str("username", ev.Username).Str("outcome", ev.Outcome).Msg("login event dropped")
			}
		}
	}
}

// send publishes ev as a persistent JSON message.
func (p *Publisher) send(ev LoginEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal login event: %w", err)
	}
	if err := p.ensureChannel(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", LoginQueueName, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish login event: %w", err)
	}
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(LoginQueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close stops the sender and releases the broker connection.  Events still
// buffered are dropped.
func (p *Publisher) Close() error {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
	return nil
}
