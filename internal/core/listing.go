package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ListingKind tags which response shape the backend used
type ListingKind int

const (
	// ListingMalformed is any JSON that is neither a bare list nor an emails envelope
	ListingMalformed ListingKind = iota
	// ListingBare is a top-level JSON array of records
	ListingBare
	// ListingWrapped is an object carrying the records in an "emails" array
	ListingWrapped
)

// Listing is the decoded email listing
type Listing struct {
	Kind   ListingKind
	Emails []EmailRecord
	// Error carries the backend's "error" field when a malformed body had one
	Error string
}

// envelope is the wrapped response shape
type envelope struct {
	Emails json.RawMessage `json:"emails"`
	Error  string          `json:"error"`
}

// DecodeListing decodes a listing body. Bodies that are not JSON at all are
// reported as ErrUnreachable; valid JSON of another shape yields a
// ListingMalformed listing with no error.
func DecodeListing(data []byte) (*Listing, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrUnreachable)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case isArray(trimmed):
		emails, ok := decodeRecords(trimmed)
		if !ok {
			return &Listing{Kind: ListingMalformed}, nil
		}
		return &Listing{Kind: ListingBare, Emails: emails}, nil

	case len(trimmed) > 0 && trimmed[0] == '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return &Listing{Kind: ListingMalformed}, nil
		}
		raw := bytes.TrimSpace(env.Emails)
		if !isArray(raw) {
			return &Listing{Kind: ListingMalformed, Error: env.Error}, nil
		}
		emails, ok := decodeRecords(raw)
		if !ok {
			return &Listing{Kind: ListingMalformed, Error: env.Error}, nil
		}
		return &Listing{Kind: ListingWrapped, Emails: emails}, nil
	}

	return &Listing{Kind: ListingMalformed}, nil
}

func isArray(raw []byte) bool {
	return len(raw) > 0 && raw[0] == '['
}

// decodeRecords fails when any element is not a record object
func decodeRecords(raw []byte) ([]EmailRecord, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	emails := make([]EmailRecord, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, false
		}
		var rec EmailRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, false
		}
		emails = append(emails, rec)
	}
	return emails, true
}
