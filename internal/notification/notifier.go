package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultSendTimeout = 15 * time.Second

// Notifier dispatches mail as a fire-and-forget side effect. Failures are
// logged and swallowed; nothing is retried.
type Notifier struct {
	mailer  Mailer
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func NewNotifier(mailer Mailer, timeout time.Duration, log zerolog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Notifier{
		mailer:  mailer,
		timeout: timeout,
		log:     log.With().Str("component", "notifier").Logger(),
	}
}

// Send delivers msg in the background
func (n *Notifier) Send(msg Message) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		_ = n.SendSync(context.Background(), msg)
	}()
}

// SendSync delivers msg and returns the captured error. It never panics.
func (n *Notifier) SendSync(ctx context.Context, msg Message) (err error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mailer panic: %v", r)
		}
		if err != nil {
			n.log.Error().
				Err(err).
				Strs("to", msg.To).
				Str("subject", msg.Subject).
				Msg("Failed to send notification")
		}
	}()

	return n.mailer.Send(ctx, msg)
}

// Wait blocks until background sends finish or ctx is done
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
