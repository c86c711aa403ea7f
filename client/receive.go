package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/Ambiki/faxage/model"
)

// ListOptions select the optional listfax columns.
type ListOptions struct {
	StartTime bool
	Filename  bool
	PageCount bool
	TSID      bool
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.StartTime {
		v.Set("starttime", "1")
	}
	if o.Filename {
		v.Set("filename", "1")
	}
	if o.PageCount {
		v.Set("pagecount", "1")
	}
	if o.TSID {
		v.Set("showtsid", "1")
	}
	return v
}

// GetOptions are the optional getfax fields.
type GetOptions struct {
	PDF bool // return the image as PDF instead of TIFF
}

// ReceiveClient lists and downloads received faxes.
type ReceiveClient struct {
	conn
}

// NewReceiveClient creates a new receive client
func NewReceiveClient(opts *Options) (*ReceiveClient, error) {
	c, err := newConn(opts)
	if err != nil {
		return nil, err
	}
	return &ReceiveClient{conn: c}, nil
}

// List retrieves the incoming faxes for the account.
func (c *ReceiveClient) List(ctx context.Context, opts ListOptions) ([]model.ReceivedFax, error) {
	raw, err := c.execute(ctx, OpListFax, PathAPI, opts.values())
	if err != nil {
		return nil, err
	}
	return c.proto.DecodeFaxList(raw, opts)
}

// Get downloads the image of a received fax.
func (c *ReceiveClient) Get(ctx context.Context, recvID string, opts GetOptions) ([]byte, error) {
	recvID = strings.TrimSpace(recvID)
	if recvID == "" {
		return nil, invalidRequest("receive id is required")
	}

	fields := url.Values{}
	fields.Set("faxid", recvID)
	if opts.PDF {
		fields.Set("pdf", "1")
	}

	raw, err := c.execute(ctx, OpGetFax, PathAPI, fields)
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}
