package model

import "time"

// HandleCount is the response from the handlecount operation.
type HandleCount struct {
	Total   int `json:"totalCount"`
	Handled int `json:"handledCount"`
}

// PendCount is the response from the pendcount operation.
type PendCount struct {
	Pending int `json:"pendingCount"`
}

// IncomingCalls is the response from the incomingcalls operation.
type IncomingCalls struct {
	Incoming  int `json:"incomingCount"`
	Allocated int `json:"allocatedCount"`
}

// QueueEntry is one pending outgoing fax from the qstatus operation.
// Faxes sharing a LineID are sent one after another.
type QueueEntry struct {
	JobID       int    `json:"jobId"`
	CallerID    string `json:"callerId"`
	Destination string `json:"destination"`
	LineID      int    `json:"lineId"`
	PageCount   int    `json:"pageCount"`
}

// BusyCall is an incoming call that got a busy signal.
type BusyCall struct {
	Called  string    `json:"numberCalled"`
	Calling string    `json:"numberCalling"`
	Time    time.Time `json:"time"`
}

// PortRequest is the status of one number port.
type PortRequest struct {
	Number       string `json:"number"`
	RequestDate  string `json:"requestDate"`
	DueDate      string `json:"dueDate"`
	CompleteDate string `json:"completeDate"` // 0000-00-00 while in progress
	Status       string `json:"status"`
	Comment      string `json:"comment,omitempty"`
	Complete     bool   `json:"complete"`
}

// AuditEntry is one record of the account audit trail.
type AuditEntry struct {
	AuditID        string `json:"auditId"`
	Timestamp      string `json:"timestamp"`
	Login          string `json:"login"`
	IPAddress      string `json:"ipAddress"`
	Interface      string `json:"interface"`
	WebSessionID   string `json:"webSessionId,omitempty"`
	Operation      string `json:"auditOp"`
	OpStatus       string `json:"opStatus"`
	RequestDetail  string `json:"requestDetail,omitempty"`
	ResponseDetail string `json:"responseDetail,omitempty"`
}
