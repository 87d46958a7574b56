package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

const sendTimeout = 10 * time.Second

// Dispatcher sends notifications off the request path. Each message is
// attempted at most once; failures and overflow are logged and dropped.
type Dispatcher struct {
	notifier Notifier
	loc      *time.Location
	queue    chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(notifier Notifier, loc *time.Location, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if loc == nil {
		loc = time.UTC
	}

	d := &Dispatcher{
		notifier: notifier,
		loc:      loc,
		queue:    make(chan Message, size),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notification panic (%s to %s): %v", msg.Kind, msg.To, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, msg); err != nil {
		log.Printf("notification error (%s to %s): %v", msg.Kind, msg.To, err)
	}
}

func (d *Dispatcher) enqueue(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- msg:
	default:
		log.Printf("notification queue full, dropping %s to %s", msg.Kind, msg.To)
	}
}

func (d *Dispatcher) SendWelcome(u models.User) {
	d.enqueue(WelcomeMessage(u))
}

func (d *Dispatcher) SendConfirmation(r models.Reservation) {
	d.enqueue(ReservationMessage(KindConfirmation, r, d.loc))
}

func (d *Dispatcher) SendCancellation(r models.Reservation) {
	d.enqueue(ReservationMessage(KindCancellation, r, d.loc))
}

// Close drains pending messages.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
