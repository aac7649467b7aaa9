package state

import (
	"maps"
	"path/filepath"
	"strings"
)

// DraftFile is the file name of the saved product form.
const DraftFile = "draft.json"

// Drafts keeps the values of a product form the backend did not accept, so they
// survive a restart.
type Drafts struct {
	store *Store[map[string]string]
}

// NewDrafts stores drafts in dir.
func NewDrafts(dir string) *Drafts {
	return &Drafts{store: NewStore(filepath.Join(dir, DraftFile), map[string]string{})}
}

// Load returns the saved values, or nil when there is no draft.
func (d *Drafts) Load() map[string]string {
	values := d.store.Get()
	if len(values) == 0 {
		return nil
	}
	return maps.Clone(values)
}

// Save stores values. An all-blank form clears the draft instead.
func (d *Drafts) Save(values map[string]string) error {
	blank := true
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			blank = false
			break
		}
	}
	if blank {
		return d.Discard()
	}
	return d.store.Set(maps.Clone(values))
}

// Discard removes the draft.
func (d *Drafts) Discard() error {
	return d.store.Clear()
}
