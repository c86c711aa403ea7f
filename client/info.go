package client

import (
	"context"
	"net/url"
	"time"

	"github.com/Ambiki/faxage/model"
)

// AuditLogOptions limit the auditlog date range. Zero values are not sent.
type AuditLogOptions struct {
	StartDate time.Time
	EndDate   time.Time
}

func (o AuditLogOptions) values() url.Values {
	v := url.Values{}
	if !o.StartDate.IsZero() {
		v.Set("startdate", o.StartDate.Format("2006-01-02"))
	}
	if !o.EndDate.IsZero() {
		v.Set("enddate", o.EndDate.Format("2006-01-02"))
	}
	return v
}

// InfoClient queries account, queue and line information.
type InfoClient struct {
	conn
}

// NewInfoClient creates a new information client
func NewInfoClient(opts *Options) (*InfoClient, error) {
	c, err := newConn(opts)
	if err != nil {
		return nil, err
	}
	return &InfoClient{conn: c}, nil
}

// HandleCount returns how many incoming faxes are stored and how many of
// them are marked as handled.
func (c *InfoClient) HandleCount(ctx context.Context) (*model.HandleCount, error) {
	raw, err := c.execute(ctx, OpHandleCount, PathAPI, nil)
	if err != nil {
		return nil, err
	}
	total, handled, err := c.proto.DecodeCounterPair(OpHandleCount, raw)
	if err != nil {
		return nil, err
	}
	return &model.HandleCount{Total: total, Handled: handled}, nil
}

// PendCount returns how many outgoing faxes are pending.
func (c *InfoClient) PendCount(ctx context.Context) (*model.PendCount, error) {
	raw, err := c.execute(ctx, OpPendCount, PathAPI, nil)
	if err != nil {
		return nil, err
	}
	pending, err := c.proto.DecodeCounter(OpPendCount, raw)
	if err != nil {
		return nil, err
	}
	return &model.PendCount{Pending: pending}, nil
}

// QueueStatus lists pending outgoing faxes and the line each is queued on.
func (c *InfoClient) QueueStatus(ctx context.Context) ([]model.QueueEntry, error) {
	raw, err := c.execute(ctx, OpQueueStatus, PathAPI, nil)
	if err != nil {
		return nil, err
	}
	return c.proto.DecodeQueue(raw)
}

// IncomingCalls returns the calls in progress and the maximum number of
// simultaneous calls the account allows.
func (c *InfoClient) IncomingCalls(ctx context.Context) (*model.IncomingCalls, error) {
	raw, err := c.execute(ctx, OpIncomingCalls, PathAPI, nil)
	if err != nil {
		return nil, err
	}
	incoming, allocated, err := c.proto.DecodeCounterPair(OpIncomingCalls, raw)
	if err != nil {
		return nil, err
	}
	return &model.IncomingCalls{Incoming: incoming, Allocated: allocated}, nil
}

// BusyCalls lists incoming calls that received a busy signal.
func (c *InfoClient) BusyCalls(ctx context.Context) ([]model.BusyCall, error) {
	raw, err := c.execute(ctx, OpBusyCalls, PathAPI, nil)
	if err != nil {
		return nil, err
	}
	return c.proto.DecodeBusyCalls(raw)
}

// PortStatus lists number port requests.
func (c *InfoClient) PortStatus(ctx context.Context) ([]model.PortRequest, error) {
	raw, err := c.execute(ctx, OpPortStatus, PathAPI, nil)
	if err != nil {
		return nil, err
	}
	return c.proto.DecodePortStatus(raw)
}

// AuditLog retrieves the account audit trail.
func (c *InfoClient) AuditLog(ctx context.Context, opts AuditLogOptions) ([]model.AuditEntry, error) {
	raw, err := c.execute(ctx, OpAuditLog, PathAPI, opts.values())
	if err != nil {
		return nil, err
	}
	return c.proto.DecodeAuditLog(raw)
}
