package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Credentials identify a FAXAGE account.
type Credentials struct {
	Username string
	Company  string
	Password string
}

// String never includes the password.
func (c Credentials) String() string {
	return c.Username + "@" + c.Company
}

// GoString keeps the password out of %#v output.
func (c Credentials) GoString() string {
	return fmt.Sprintf("client.Credentials{Username:%q, Company:%q, Password:\"***\"}", c.Username, c.Company)
}

// Options holds client configuration
type Options struct {
	Credentials

	BaseURL    string        // defaults to DefaultBaseURL
	Timeout    time.Duration // ignored when HTTPClient or Transport is set
	HTTPClient *http.Client
	Transport  Transport   // overrides BaseURL and HTTPClient
	Logger     *log.Logger // nil discards log output
}

// conn is the state shared by all operation clients. It is never modified
// after construction.
type conn struct {
	creds     Credentials
	transport Transport
	proto     *Protocol
	logger    *log.Logger
}

func newConn(opts *Options) (conn, error) {
	if opts == nil {
		return conn{}, invalidRequest("options are nil")
	}
	if opts.Username == "" || opts.Company == "" || opts.Password == "" {
		return conn{}, invalidRequest("username, company and password are required")
	}

	transport := opts.Transport
	if transport == nil {
		t := NewHTTPTransport(opts.BaseURL, opts.HTTPClient)
		if opts.HTTPClient == nil && opts.Timeout > 0 {
			t.httpClient.Timeout = opts.Timeout
		}
		transport = t
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return conn{
		creds:     opts.Credentials,
		transport: transport,
		proto:     NewProtocol(),
		logger:    logger,
	}, nil
}

// execute posts an operation and classifies the response. It returns the
// raw response text only when no vendor error marker was found.
func (c conn) execute(ctx context.Context, op, path string, extra url.Values) (string, error) {
	logger := c.logger.With("op", op, "request_id", uuid.NewString())
	logger.Debug("posting request", "path", path)

	raw, err := c.transport.Post(ctx, path, c.proto.Fields(op, c.creds, extra))
	if err != nil {
		logger.Debug("transport failed", "err", err)
		return "", fmt.Errorf("faxage %s: %w", op, err)
	}

	if err := Classify(op, raw); err != nil {
		logger.Debug("faxage returned an error", "err", err)
		return "", err
	}

	logger.Debug("response received", "bytes", len(raw))
	return raw, nil
}

// Client bundles the operation clients for one account.
type Client struct {
	Send    *SendClient
	Receive *ReceiveClient
	Info    *InfoClient
}

// New creates all operation clients sharing the same options.
func New(opts *Options) (*Client, error) {
	c, err := newConn(opts)
	if err != nil {
		return nil, err
	}
	return &Client{
		Send:    &SendClient{conn: c},
		Receive: &ReceiveClient{conn: c},
		Info:    &InfoClient{conn: c},
	}, nil
}
