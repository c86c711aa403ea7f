package client

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Ambiki/faxage/model"
)

// Protocol handles encoding and decoding of FAXAGE API messages
type Protocol struct{}

// NewProtocol creates a new Protocol handler
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Fields builds the form body for an operation. Values in extra replace
// the operation and credential fields on key collision.
func (p *Protocol) Fields(op string, creds Credentials, extra url.Values) url.Values {
	fields := url.Values{}
	fields.Set("operation", op)
	fields.Set("username", creds.Username)
	fields.Set("company", creds.Company)
	fields.Set("password", creds.Password)
	for key, vals := range extra {
		fields[key] = append([]string(nil), vals...)
	}
	return fields
}

var jobIDRegex = regexp.MustCompile(`JOBID:\s*(\d+)`)

// DecodeJobID extracts the job id following the JOBID: label.
func (p *Protocol) DecodeJobID(raw string) (int, error) {
	match := jobIDRegex.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0, malformed(OpSendFax, raw, fmt.Errorf("no JOBID in response"))
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, malformed(OpSendFax, raw, err)
	}
	return id, nil
}

// DecodeCounter parses a single integer response, e.g. pendcount.
func (p *Protocol) DecodeCounter(op, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(stripNewlines(raw)))
	if err != nil {
		return 0, malformed(op, raw, err)
	}
	return n, nil
}

// DecodeCounterPair parses a "<a>~<b>" response, e.g. handlecount.
func (p *Protocol) DecodeCounterPair(op, raw string) (int, int, error) {
	parts := strings.Split(stripNewlines(raw), "~")
	if len(parts) != 2 {
		return 0, 0, malformed(op, raw, fmt.Errorf("expected 2 fields, got %d", len(parts)))
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, malformed(op, raw, err)
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, malformed(op, raw, err)
	}
	return first, second, nil
}

// ListLayout holds the column index of every listfax field.
// Absent optional fields have index -1.
type ListLayout struct {
	RecvID    int
	RecvDate  int
	StartTime int
	CID       int
	DNIS      int
	Filename  int
	PageCount int
	TSID      int
	Width     int
}

// NewListLayout computes the record layout produced for the given options.
// Columns appear in a fixed order: recvid, recvdate, [starttime], cid, dnis,
// [filename], [pagecount], [tsid].
func NewListLayout(opts ListOptions) ListLayout {
	layout := ListLayout{StartTime: -1, Filename: -1, PageCount: -1, TSID: -1}
	next := func() int {
		i := layout.Width
		layout.Width++
		return i
	}
	layout.RecvID = next()
	layout.RecvDate = next()
	if opts.StartTime {
		layout.StartTime = next()
	}
	layout.CID = next()
	layout.DNIS = next()
	if opts.Filename {
		layout.Filename = next()
	}
	if opts.PageCount {
		layout.PageCount = next()
	}
	if opts.TSID {
		layout.TSID = next()
	}
	return layout
}

// DecodeFaxList parses listfax records using the layout implied by opts.
func (p *Protocol) DecodeFaxList(raw string, opts ListOptions) ([]model.ReceivedFax, error) {
	layout := NewListLayout(opts)
	optional := func(cols []string, i int) string {
		if i < 0 {
			return ""
		}
		return cols[i]
	}
	return decodeRecords(OpListFax, raw, layout.Width, func(cols []string) (model.ReceivedFax, error) {
		return model.ReceivedFax{
			RecvID:    cols[layout.RecvID],
			RecvDate:  cols[layout.RecvDate],
			StartTime: optional(cols, layout.StartTime),
			CID:       cols[layout.CID],
			DNIS:      cols[layout.DNIS],
			Filename:  optional(cols, layout.Filename),
			PageCount: optional(cols, layout.PageCount),
			TSID:      optional(cols, layout.TSID),
		}, nil
	})
}

// DecodeQueue parses qstatus records:
// <jobid><tab><callerID><tab><destination><tab><lineid><tab><pagecount>
func (p *Protocol) DecodeQueue(raw string) ([]model.QueueEntry, error) {
	return decodeRecords(OpQueueStatus, raw, 5, func(cols []string) (model.QueueEntry, error) {
		var (
			entry = model.QueueEntry{CallerID: cols[1], Destination: cols[2]}
			err   error
		)
		if entry.JobID, err = atoiField("jobid", cols[0]); err != nil {
			return entry, err
		}
		if entry.LineID, err = atoiField("lineid", cols[3]); err != nil {
			return entry, err
		}
		if entry.PageCount, err = atoiField("pagecount", cols[4]); err != nil {
			return entry, err
		}
		return entry, nil
	})
}

const timestampLayout = "2006-01-02 15:04:05"

// DecodeBusyCalls parses busycalls records:
// <number-called><tab><number-calling><tab><time>
func (p *Protocol) DecodeBusyCalls(raw string) ([]model.BusyCall, error) {
	return decodeRecords(OpBusyCalls, raw, 3, func(cols []string) (model.BusyCall, error) {
		t, err := time.Parse(timestampLayout, cols[2])
		if err != nil {
			return model.BusyCall{}, fmt.Errorf("field time: %w", err)
		}
		return model.BusyCall{Called: cols[0], Calling: cols[1], Time: t}, nil
	})
}

// DecodePortStatus parses portstatus records:
// <number><tab><request-date><tab><duedate><tab><completedate><tab><status><tab><comment><tab><complete>
func (p *Protocol) DecodePortStatus(raw string) ([]model.PortRequest, error) {
	return decodeRecords(OpPortStatus, raw, 7, func(cols []string) (model.PortRequest, error) {
		req := model.PortRequest{
			Number:       cols[0],
			RequestDate:  cols[1],
			DueDate:      cols[2],
			CompleteDate: cols[3],
			Status:       cols[4],
			Comment:      cols[5],
		}
		switch strings.ToLower(strings.TrimSpace(cols[6])) {
		case "yes":
			req.Complete = true
		case "no":
		default:
			return req, fmt.Errorf("field complete: unexpected value %q", cols[6])
		}
		return req, nil
	})
}

// DecodeAuditLog parses auditlog records of ten tab separated columns.
func (p *Protocol) DecodeAuditLog(raw string) ([]model.AuditEntry, error) {
	return decodeRecords(OpAuditLog, raw, 10, func(cols []string) (model.AuditEntry, error) {
		return model.AuditEntry{
			AuditID:        cols[0],
			Timestamp:      cols[1],
			Login:          cols[2],
			IPAddress:      cols[3],
			Interface:      cols[4],
			WebSessionID:   cols[5],
			Operation:      cols[6],
			OpStatus:       cols[7],
			RequestDetail:  cols[8],
			ResponseDetail: cols[9],
		}, nil
	})
}

// decodeRecords splits raw into newline separated records of exactly width
// tab separated columns and converts each with fn. Blank lines are skipped.
// The result is never nil, so it encodes as an empty JSON array.
func decodeRecords[T any](op, raw string, width int, fn func(cols []string) (T, error)) ([]T, error) {
	result := []T{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != width {
			return nil, malformed(op, line, fmt.Errorf("expected %d columns, got %d", width, len(cols)))
		}
		rec, err := fn(cols)
		if err != nil {
			return nil, malformed(op, line, err)
		}
		result = append(result, rec)
	}
	return result, nil
}

func atoiField(name, val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return n, nil
}

func stripNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "")
}
