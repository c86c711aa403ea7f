package model

// Attachment is one document of an outgoing fax.
type Attachment struct {
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64 encoded file contents
}

// OutgoingFax describes a fax to submit with the sendfax operation.
type OutgoingFax struct {
	RecipientName string       `json:"recipientName"` // 32 characters max
	FaxNumber     string       `json:"faxNumber"`     // 10 digits, numeric only
	Files         []Attachment `json:"files"`
	// Debug posts to the debugging URL, which sends the fax as normal and
	// also echoes the posted fields back. The echo includes the base64 file
	// data, and the sendfax error markers are matched anywhere in the
	// response, so a document whose encoding happens to contain a marker
	// such as "ERR05" is reported as that error even though the fax was sent.
	Debug bool `json:"debug,omitempty"`
}

// SendResult is the response from the sendfax operation. Debug holds the
// echo of a debug send with the password value masked.
type SendResult struct {
	JobID int    `json:"jobId"`
	Debug string `json:"debug,omitempty"`
}

// ReceivedFax is one record of the listfax operation. Optional fields are
// only populated when the matching list option was requested.
type ReceivedFax struct {
	RecvID    string `json:"recvid"`
	RecvDate  string `json:"recvdate"`
	StartTime string `json:"starttime,omitempty"`
	CID       string `json:"cid"`
	DNIS      string `json:"dnis"`
	Filename  string `json:"filename,omitempty"`
	PageCount string `json:"pagecount,omitempty"`
	TSID      string `json:"tsid,omitempty"`
}
