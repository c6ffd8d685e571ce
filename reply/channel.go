package reply

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/metrics"
)

// FullChannelPolicy governs what a Channel does when its buffer is
// full at delivery time.
type FullChannelPolicy interface {
	isFullChannelPolicy()
}

// DropMessage drops the reply and logs an error when the channel is full.
type DropMessage struct{}

func (DropMessage) isFullChannelPolicy() {}

// Timeout blocks up to Duration waiting for a slot before giving up and
// dropping the reply.
type Timeout struct {
	Duration time.Duration
}

func (Timeout) isFullChannelPolicy() {}

// Delivery pairs a Result with the application-supplied correlation handle
// for the request it answers.
type Delivery struct {
	Result Result
	Handle string
}

// Channel is a Handler that delivers onto a bounded channel instead of
// invoking a callback directly, giving the application a pull-based
// interface over the same at-most-once delivery guarantee.
type Channel struct {
	ch      chan Delivery
	handle  string
	policy  FullChannelPolicy
	log     *logrus.Entry
	metrics *metrics.ClientMetrics
}

// NewChannel wraps ch with a correlation handle and a full-channel policy.
// ch is typically shared across many in-flight requests; each request gets
// its own Channel value carrying its own handle. m may be nil, in which
// case dropped replies are logged but not counted.
func NewChannel(ch chan Delivery, handle string, policy FullChannelPolicy, log *logrus.Entry, m *metrics.ClientMetrics) *Channel {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Channel{ch: ch, handle: handle, policy: policy, log: log, metrics: m}
}

// OnReply implements Handler. It tries a non-blocking send first; on a
// full channel it applies the configured policy.
func (c *Channel) OnReply(result Result) {
	delivery := Delivery{Result: result, Handle: c.handle}

	select {
	case c.ch <- delivery:
		return
	default:
	}

	switch policy := c.policy.(type) {
	case DropMessage:
		c.log.WithField("handle", c.handle).Error("reply channel full, dropping message")
		c.countDropped()
	case Timeout:
		timer := time.NewTimer(policy.Duration)
		defer timer.Stop()
		select {
		case c.ch <- delivery:
		case <-timer.C:
			c.log.WithField("handle", c.handle).Error("reply channel full, timed out waiting for slot, dropping message")
			c.countDropped()
		}
	default:
		c.log.WithField("handle", c.handle).Error("reply channel full, no policy configured, dropping message")
		c.countDropped()
	}
}

func (c *Channel) countDropped() {
	if c.metrics != nil {
		c.metrics.RepliesDropped.Inc()
	}
}
