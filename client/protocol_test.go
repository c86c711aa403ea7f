package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ambiki/faxage/model"
)

func TestFields(t *testing.T) {
	proto := NewProtocol()
	creds := Credentials{Username: "user", Company: "12345", Password: "secret"}

	fields := proto.Fields(OpListFax, creds, nil)
	assert.Equal(t, "listfax", fields.Get("operation"))
	assert.Equal(t, "user", fields.Get("username"))
	assert.Equal(t, "12345", fields.Get("company"))
	assert.Equal(t, "secret", fields.Get("password"))

	extra := map[string][]string{"operation": {"other"}, "pagecount": {"1"}}
	fields = proto.Fields(OpListFax, creds, extra)
	assert.Equal(t, "other", fields.Get("operation"))
	assert.Equal(t, "1", fields.Get("pagecount"))

	extra["pagecount"][0] = "2"
	assert.Equal(t, "1", fields.Get("pagecount"))
}

func TestDecodeJobID(t *testing.T) {
	proto := NewProtocol()

	id, err := proto.DecodeJobID("JOBID: 4821")
	require.NoError(t, err)
	assert.Equal(t, 4821, id)

	id, err = proto.DecodeJobID("operation=sendfax\nfaxno=5551234567\nJOBID:77\n")
	require.NoError(t, err)
	assert.Equal(t, 77, id)

	_, err = proto.DecodeJobID("OK")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = proto.DecodeJobID("JOBID: none")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeCounterPair(t *testing.T) {
	proto := NewProtocol()

	total, handled, err := proto.DecodeCounterPair(OpHandleCount, "10~3\n")
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 3, handled)

	for _, raw := range []string{"10~x", "a~3", "10", "1~2~3", "~"} {
		_, _, err := proto.DecodeCounterPair(OpHandleCount, raw)
		assert.ErrorIs(t, err, ErrMalformedResponse, raw)
	}
}

func TestDecodeCounter(t *testing.T) {
	proto := NewProtocol()

	n, err := proto.DecodeCounter(OpPendCount, "7\n")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = proto.DecodeCounter(OpPendCount, "seven")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNewListLayout(t *testing.T) {
	tests := []struct {
		opts ListOptions
		want ListLayout
	}{
		{ListOptions{}, ListLayout{0, 1, -1, 2, 3, -1, -1, -1, 4}},
		{ListOptions{TSID: true}, ListLayout{0, 1, -1, 2, 3, -1, -1, 4, 5}},
		{ListOptions{PageCount: true}, ListLayout{0, 1, -1, 2, 3, -1, 4, -1, 5}},
		{ListOptions{PageCount: true, TSID: true}, ListLayout{0, 1, -1, 2, 3, -1, 4, 5, 6}},
		{ListOptions{Filename: true}, ListLayout{0, 1, -1, 2, 3, 4, -1, -1, 5}},
		{ListOptions{Filename: true, TSID: true}, ListLayout{0, 1, -1, 2, 3, 4, -1, 5, 6}},
		{ListOptions{Filename: true, PageCount: true}, ListLayout{0, 1, -1, 2, 3, 4, 5, -1, 6}},
		{ListOptions{Filename: true, PageCount: true, TSID: true}, ListLayout{0, 1, -1, 2, 3, 4, 5, 6, 7}},
		{ListOptions{StartTime: true}, ListLayout{0, 1, 2, 3, 4, -1, -1, -1, 5}},
		{ListOptions{StartTime: true, TSID: true}, ListLayout{0, 1, 2, 3, 4, -1, -1, 5, 6}},
		{ListOptions{StartTime: true, PageCount: true}, ListLayout{0, 1, 2, 3, 4, -1, 5, -1, 6}},
		{ListOptions{StartTime: true, PageCount: true, TSID: true}, ListLayout{0, 1, 2, 3, 4, -1, 5, 6, 7}},
		{ListOptions{StartTime: true, Filename: true}, ListLayout{0, 1, 2, 3, 4, 5, -1, -1, 6}},
		{ListOptions{StartTime: true, Filename: true, TSID: true}, ListLayout{0, 1, 2, 3, 4, 5, -1, 6, 7}},
		{ListOptions{StartTime: true, Filename: true, PageCount: true}, ListLayout{0, 1, 2, 3, 4, 5, 6, -1, 7}},
		{ListOptions{StartTime: true, Filename: true, PageCount: true, TSID: true}, ListLayout{0, 1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%+v", tt.opts), func(t *testing.T) {
			assert.Equal(t, tt.want, NewListLayout(tt.opts))
		})
	}
}

func TestDecodeFaxListPlain(t *testing.T) {
	proto := NewProtocol()

	faxes, err := proto.DecodeFaxList("1001\t2024-01-01\t5551234567\t5557654321", ListOptions{})
	require.NoError(t, err)
	require.Len(t, faxes, 1)
	assert.Equal(t, model.ReceivedFax{
		RecvID:   "1001",
		RecvDate: "2024-01-01",
		CID:      "5551234567",
		DNIS:     "5557654321",
	}, faxes[0])
}

func TestDecodeFaxListFilenamePageCount(t *testing.T) {
	proto := NewProtocol()
	opts := ListOptions{Filename: true, PageCount: true}
	line := "1001\t2024-01-01\t5551234567\t5557654321\tfax.tif\t3"

	first, err := proto.DecodeFaxList(line, opts)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "fax.tif", first[0].Filename)
	assert.Equal(t, "3", first[0].PageCount)
	assert.Empty(t, first[0].TSID)
	assert.Empty(t, first[0].StartTime)

	second, err := proto.DecodeFaxList(line, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeFaxListMultipleRecords(t *testing.T) {
	proto := NewProtocol()
	raw := "1\t2024-01-01\t111\t222\r\n2\t2024-01-02\t333\t444\n\n"

	faxes, err := proto.DecodeFaxList(raw, ListOptions{})
	require.NoError(t, err)
	require.Len(t, faxes, 2)
	assert.Equal(t, "1", faxes[0].RecvID)
	assert.Equal(t, "444", faxes[1].DNIS)
}

func TestDecodeFaxListWrongArity(t *testing.T) {
	proto := NewProtocol()

	_, err := proto.DecodeFaxList("1001\t2024-01-01\t5551234567\t5557654321\tfax.tif", ListOptions{})
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = proto.DecodeFaxList("1001\t2024-01-01\t5551234567\t5557654321", ListOptions{TSID: true})
	require.ErrorIs(t, err, ErrMalformedResponse)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, OpListFax, respErr.Operation)
	assert.Equal(t, "1001\t2024-01-01\t5551234567\t5557654321", respErr.Raw)
}

// Every combination of trailing columns, with and without starttime,
// decodes each requested field from its own column.
func TestDecodeFaxListRoundTrip(t *testing.T) {
	proto := NewProtocol()

	for _, startTime := range []bool{false, true} {
		for mask := 1; mask < 8; mask++ {
			opts := ListOptions{
				StartTime: startTime,
				Filename:  mask&1 != 0,
				PageCount: mask&2 != 0,
				TSID:      mask&4 != 0,
			}
			want := model.ReceivedFax{RecvID: "42", RecvDate: "2024-05-06", CID: "5550001111", DNIS: "5552223333"}

			cols := []string{want.RecvID, want.RecvDate}
			if opts.StartTime {
				want.StartTime = "12:30:00"
				cols = append(cols, want.StartTime)
			}
			cols = append(cols, want.CID, want.DNIS)
			if opts.Filename {
				want.Filename = "incoming.tif"
				cols = append(cols, want.Filename)
			}
			if opts.PageCount {
				want.PageCount = "12"
				cols = append(cols, want.PageCount)
			}
			if opts.TSID {
				want.TSID = "ACME FAX"
				cols = append(cols, want.TSID)
			}

			t.Run(fmt.Sprintf("%+v", opts), func(t *testing.T) {
				assert.Equal(t, len(cols), NewListLayout(opts).Width)

				got, err := proto.DecodeFaxList(strings.Join(cols, "\t")+"\n", opts)
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, want, got[0])
			})
		}
	}
}

func TestListOptionsValues(t *testing.T) {
	v := ListOptions{StartTime: true, TSID: true}.values()
	assert.Equal(t, "1", v.Get("starttime"))
	assert.Equal(t, "1", v.Get("showtsid"))
	assert.Empty(t, v.Get("filename"))
	assert.Empty(t, v.Get("pagecount"))
	assert.Empty(t, ListOptions{}.values())
}

func TestDecodeQueue(t *testing.T) {
	proto := NewProtocol()

	entries, err := proto.DecodeQueue("9001\t5551112222\t5553334444\t2\t4\n9002\t5551112222\t5556667777\t2\t1\n")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.QueueEntry{
		JobID:       9001,
		CallerID:    "5551112222",
		Destination: "5553334444",
		LineID:      2,
		PageCount:   4,
	}, entries[0])
	assert.Equal(t, entries[0].LineID, entries[1].LineID)

	_, err = proto.DecodeQueue("9001\t5551112222\t5553334444\tline\t4")
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "lineid")
}

func TestDecodeRecordsEmpty(t *testing.T) {
	proto := NewProtocol()

	entries, err := proto.DecodeQueue("\r\n\n")
	require.NoError(t, err)
	require.NotNil(t, entries)
	assert.Empty(t, entries)

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeBusyCalls(t *testing.T) {
	proto := NewProtocol()

	calls, err := proto.DecodeBusyCalls("5551112222\t5553334444\t2024-03-04 05:06:07\n")
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "5551112222", calls[0].Called)
	assert.Equal(t, "5553334444", calls[0].Calling)
	assert.Equal(t, time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC), calls[0].Time)

	_, err = proto.DecodeBusyCalls("5551112222\t5553334444\tyesterday")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodePortStatus(t *testing.T) {
	proto := NewProtocol()
	raw := "5551112222\t2024-01-01\t2024-01-15\t0000-00-00\tSOA PEND\tcarrier accepted\tNo\n" +
		"5553334444\t2023-11-01\t2023-11-10\t2023-11-10\tCompleted\t\tYes\n"

	ports, err := proto.DecodePortStatus(raw)
	require.NoError(t, err)
	require.Len(t, ports, 2)
	assert.Equal(t, "SOA PEND", ports[0].Status)
	assert.Equal(t, "carrier accepted", ports[0].Comment)
	assert.False(t, ports[0].Complete)
	assert.True(t, ports[1].Complete)
	assert.Empty(t, ports[1].Comment)

	_, err = proto.DecodePortStatus("5551112222\t2024-01-01\t2024-01-15\t0000-00-00\tInitial\t\tMaybe")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeAuditLog(t *testing.T) {
	proto := NewProtocol()
	raw := "77\t2024-02-02 10:00:00\tjdoe\t10.0.0.1\tweb\tabc123\tsendfax\tsuccess\tfaxno=5551112222\tJOBID: 5\n"

	entries, err := proto.DecodeAuditLog(raw)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.AuditEntry{
		AuditID:        "77",
		Timestamp:      "2024-02-02 10:00:00",
		Login:          "jdoe",
		IPAddress:      "10.0.0.1",
		Interface:      "web",
		WebSessionID:   "abc123",
		Operation:      "sendfax",
		OpStatus:       "success",
		RequestDetail:  "faxno=5551112222",
		ResponseDetail: "JOBID: 5",
	}, entries[0])

	_, err = proto.DecodeAuditLog("77\t2024-02-02 10:00:00\tjdoe")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
