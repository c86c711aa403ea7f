package client

import (
	"context"
	"encoding/base64"
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/Ambiki/faxage/model"
)

const maxRecipientName = 32

var faxNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)

// SendOptions are the optional sendfax fields.
type SendOptions struct {
	TagName     string // header name printed on the fax
	TagNumber   string // header number printed on the fax
	CallerID    string // outgoing caller ID, 10 digits
	EmailNotify bool   // email a delivery notification
	NotifyEmail string // address for EmailNotify, account default if empty
	URLNotify   string // URL FAXAGE posts the delivery status to
}

func (o SendOptions) values() url.Values {
	v := url.Values{}
	if o.TagName != "" {
		v.Set("tagname", o.TagName)
	}
	if o.TagNumber != "" {
		v.Set("tagnumber", o.TagNumber)
	}
	if o.CallerID != "" {
		v.Set("callerid", o.CallerID)
	}
	if o.EmailNotify {
		v.Set("em_notify", "1")
		if o.NotifyEmail != "" {
			v.Set("email", o.NotifyEmail)
		}
	}
	if o.URLNotify != "" {
		v.Set("url_notify", o.URLNotify)
	}
	return v
}

// SendClient submits outgoing faxes.
type SendClient struct {
	conn
}

// NewSendClient creates a new send client
func NewSendClient(opts *Options) (*SendClient, error) {
	c, err := newConn(opts)
	if err != nil {
		return nil, err
	}
	return &SendClient{conn: c}, nil
}

// ValidateFax checks fax against the limits FAXAGE enforces on sendfax.
func ValidateFax(fax model.OutgoingFax) error {
	if fax.RecipientName == "" {
		return invalidRequest("recipient name is required")
	}
	if utf8.RuneCountInString(fax.RecipientName) > maxRecipientName {
		return invalidRequest("recipient name exceeds %d characters", maxRecipientName)
	}
	if !faxNumberRegex.MatchString(fax.FaxNumber) {
		return invalidRequest("fax number %q must be 10 digits", fax.FaxNumber)
	}
	if len(fax.Files) == 0 {
		return invalidRequest("no files to fax")
	}
	for i, f := range fax.Files {
		if f.Filename == "" {
			return invalidRequest("file %d has no name", i)
		}
		if _, err := base64.StdEncoding.DecodeString(f.Data); err != nil {
			return invalidRequest("file %q is not valid base64: %v", f.Filename, err)
		}
	}
	return nil
}

// Send submits a fax and returns the job id FAXAGE assigned to it.
func (c *SendClient) Send(ctx context.Context, fax model.OutgoingFax, opts SendOptions) (*model.SendResult, error) {
	if err := ValidateFax(fax); err != nil {
		return nil, err
	}

	path := PathAPI
	if fax.Debug {
		path = PathDebug
	}

	fields := url.Values{}
	fields.Set("recipname", fax.RecipientName)
	fields.Set("faxno", fax.FaxNumber)
	for _, f := range fax.Files {
		fields.Add("faxfilenames[]", f.Filename)
		fields.Add("faxfiledata[]", f.Data)
	}
	for key, vals := range opts.values() {
		fields[key] = vals
	}

	raw, err := c.execute(ctx, OpSendFax, path, fields)
	if err != nil {
		return nil, err
	}

	jobID, err := c.proto.DecodeJobID(raw)
	if err != nil {
		return nil, err
	}

	result := &model.SendResult{JobID: jobID}
	if fax.Debug {
		result.Debug = RedactPassword(raw)
	}
	return result, nil
}
