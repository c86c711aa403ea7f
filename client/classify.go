package client

import "strings"

// Operation names as the FAXAGE API expects them in the "operation" field.
const (
	OpSendFax       = "sendfax"
	OpListFax       = "listfax"
	OpGetFax        = "getfax"
	OpHandleCount   = "handlecount"
	OpPendCount     = "pendcount"
	OpQueueStatus   = "qstatus"
	OpIncomingCalls = "incomingcalls"
	OpBusyCalls     = "busycalls"
	OpPortStatus    = "portstatus"
	OpAuditLog      = "auditlog"
)

// rule maps a vendor error marker to a sentinel error.
// A rule with no Operations applies to every operation.
type rule struct {
	Marker     string
	Kind       error
	Operations []string
	KeepRaw    bool
}

func (r rule) appliesTo(op string) bool {
	if len(r.Operations) == 0 {
		return true
	}
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// rules are evaluated in order; the first marker found in the response wins.
// Markers must match the vendor's text verbatim.
var rules = []rule{
	{Marker: "ERR02: Login incorrect", Kind: ErrLoginFailed},
	{Marker: "ERR01: Database connection failed", Kind: ErrInternal},
	{Marker: "ERR08: Unknown operation", Kind: ErrUnknownOperation, KeepRaw: true},

	{Marker: "ERR03: No files to fax", Kind: ErrNoFiles, Operations: []string{OpSendFax}},
	{Marker: "ERR04: Fax number", Kind: ErrInvalidFaxNumber, Operations: []string{OpSendFax}},
	{Marker: "ERR05", Kind: ErrBlockedNumber, Operations: []string{OpSendFax}},
	{Marker: "ERR15: Invalid Job ID", Kind: ErrInvalidJobID, Operations: []string{OpSendFax}},

	{Marker: "ERR11: No incoming faxes available", Kind: ErrNoIncomingFaxes, Operations: []string{OpListFax}},

	{Marker: "ERR12: FAX ID", Kind: ErrFaxIDNotFound, Operations: []string{OpGetFax}, KeepRaw: true},
	{Marker: "ERR13: File could not be opened", Kind: ErrInternal, Operations: []string{OpGetFax}, KeepRaw: true},
}

// Classify inspects a raw response for the given operation.
// It returns nil when the response carries data for the decoder.
func Classify(op, raw string) error {
	return classify(rules, op, raw)
}

func classify(rules []rule, op, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return newResponseError(op, ErrNoResponse, "", nil)
	}
	for _, r := range rules {
		if !r.appliesTo(op) || !strings.Contains(raw, r.Marker) {
			continue
		}
		if !r.KeepRaw {
			return newResponseError(op, r.Kind, "", nil)
		}
		return newResponseError(op, r.Kind, raw, nil)
	}
	return nil
}
