package subscriptions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/diwise/entity-registry/pkg/entities/notifications"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// Notifier posts entity change notifications to an external endpoint
type Notifier interface {
	Start() error
	Stop() error

	EntityCreated(ctx context.Context, e entities.Entity)
	EntityUpdated(ctx context.Context, e entities.Entity)
	EntityDeleted(ctx context.Context, e entities.Entity)
}

var tracer = otel.Tracer("entity-registry/notifier")

var errQueueFull = errors.New("notification queue is full")

type action func()

type notifier struct {
	mu      sync.Mutex
	started bool
	stopped bool

	endpoint     string
	httpClient   *http.Client
	queueSize    int
	drainTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	queue  chan action
	done   chan struct{}
}

// WithRequestTimeout limits the time spent on each posted notification
func WithRequestTimeout(timeout time.Duration) func(*notifier) {
	return func(n *notifier) {
		n.httpClient.Timeout = timeout
	}
}

// WithDrainTimeout limits how long Stop waits for queued notifications
// before aborting the remaining posts
func WithDrainTimeout(timeout time.Duration) func(*notifier) {
	return func(n *notifier) {
		n.drainTimeout = timeout
	}
}

func WithQueueSize(size int) func(*notifier) {
	return func(n *notifier) {
		if size > 0 {
			n.queueSize = size
		}
	}
}

func NewNotifier(ctx context.Context, endpoint string, options ...func(*notifier)) (Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("a notification endpoint is required")
	}

	n := &notifier{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		queueSize:    32,
		drainTimeout: 15 * time.Second,
		done:         make(chan struct{}),
	}

	for _, opt := range options {
		opt(n)
	}

	// posts must outlive both the request and the context the notifier was created with
	n.ctx, n.cancel = context.WithCancel(context.WithoutCancel(ctx))
	n.queue = make(chan action, n.queueSize)

	return n, nil
}

func (n *notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return fmt.Errorf("notifier has been stopped")
	}

	if n.started {
		return fmt.Errorf("already started")
	}

	n.started = true

	go n.run()

	return nil
}

// Stop drains any queued notifications and waits for them to be posted.
// Posts that have not completed within the drain timeout are cancelled.
func (n *notifier) Stop() error {
	n.mu.Lock()

	if n.stopped {
		n.mu.Unlock()
		return nil
	}

	n.stopped = true
	running := n.started
	close(n.queue)

	n.mu.Unlock()

	defer n.cancel()

	if !running {
		return nil
	}

	select {
	case <-n.done:
		return nil
	case <-time.After(n.drainTimeout):
	}

	n.cancel()
	<-n.done

	return fmt.Errorf("notifications were aborted after waiting %s for the queue to drain", n.drainTimeout)
}

func (n *notifier) EntityCreated(ctx context.Context, e entities.Entity) {
	n.enqueue(ctx, notifications.EntityCreated, e)
}

func (n *notifier) EntityUpdated(ctx context.Context, e entities.Entity) {
	n.enqueue(ctx, notifications.EntityUpdated, e)
}

func (n *notifier) EntityDeleted(ctx context.Context, e entities.Entity) {
	n.enqueue(ctx, notifications.EntityDeleted, e)
}

func (n *notifier) enqueue(ctx context.Context, notificationType string, e entities.Entity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started || n.stopped {
		return
	}

	var err error

	logger := logging.GetFromContext(ctx)

	ctx, span := tracer.Start(
		tracing.ExtractHeaders(n.ctx, tracing.InjectHeaders(ctx)),
		"post-notification",
	)

	post := func() {
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = n.postNotification(ctx, notifications.NewNotification(notificationType, e))
		if err != nil {
			logger.Error("failed to post notification", "type", notificationType, "err", err.Error())
		}
	}

	// never block the caller on a slow endpoint
	select {
	case n.queue <- post:
	default:
		logger.Warn("dropping notification", "type", notificationType, "entity_id", e.ID, "err", errQueueFull.Error())
		tracing.RecordAnyErrorAndEndSpan(errQueueFull, span)
	}
}

func (n *notifier) postNotification(ctx context.Context, notification *notifications.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshalling error (%w)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("unable to create new request (%w)", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned status code %d", resp.StatusCode)
	}

	return nil
}

func (n *notifier) run() {
	defer close(n.done)

	// repeat until the queue is closed
	for action := range n.queue {
		action()
	}
}
