// Package ticket defines the ticket record and its sources.
package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrSidecarNotFound indicates the per-ticket JSON file is missing.
	ErrSidecarNotFound = errors.New("ticket info file not found")

	// ErrMalformedSidecar indicates the per-ticket JSON file did not decode.
	ErrMalformedSidecar = errors.New("invalid ticket info file")
)

// Record holds the metadata extracted for a single ticket.
type Record struct {
	// Prefix is the tracker project key, e.g. "FSDS". Not serialized;
	// the sidecar filename already carries it.
	Prefix string `json:"-"`

	Number         int    `json:"fsds_number"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	ReviewDeadline string `json:"review_deadline,omitempty"`
	Signature      string `json:"signature,omitempty"`
}

// Key returns the full ticket key, e.g. "FSDS-189".
func (r *Record) Key() string {
	return fmt.Sprintf("%s-%d", r.Prefix, r.Number)
}

// SidecarName returns the JSON sidecar filename for this record.
func (r *Record) SidecarName() string {
	return r.Key() + "-info.json"
}

// Save writes the record to its JSON sidecar file under dir.
func (r *Record) Save(dir string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.SidecarName())
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a record back from its JSON sidecar file under dir.
func Load(dir, prefix string, number int) (*Record, error) {
	rec := &Record{Prefix: prefix, Number: number}
	path := filepath.Join(dir, rec.SidecarName())

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSidecarNotFound, path)
		}
		return nil, err
	}

	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSidecar, path, err)
	}
	if rec.Number == 0 {
		rec.Number = number
	}
	return rec, nil
}

// Source fetches a ticket record by number. Implementations exist for
// saved HTML exports and the live Jira API, so the pipeline can be
// tested against fakes.
type Source interface {
	// Fetch retrieves the record for the given ticket number. File
	// sources ignore the number and return whatever the markup holds.
	Fetch(ctx context.Context, number int) (*Record, error)

	// Name identifies the source, e.g. "jira", "file".
	Name() string
}
