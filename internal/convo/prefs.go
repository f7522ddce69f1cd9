package convo

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/foliobot/internal/store"
)

// PrefStore persists the preference blob through a hackpadfs filesystem:
// IndexedDB-backed in the browser, an in-memory FS in tests. Read and
// write failures are silently ignored: preferences always degrade to the
// zero value.
type PrefStore struct {
	fs   hackpadfs.FS
	path string
}

// NewPrefStore wires a preference store at path on fs.
func NewPrefStore(fs hackpadfs.FS, path string) *PrefStore {
	return &PrefStore{fs: fs, path: path}
}

// Load reads the persisted preferences. Missing or corrupted data yields
// the defaults.
func (p *PrefStore) Load() store.Preferences {
	var prefs store.Preferences
	content, err := hackpadfs.ReadFile(p.fs, p.path)
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(content, &prefs); err != nil {
		return store.Preferences{}
	}
	return prefs
}

// Save writes the preferences, ignoring failure.
func (p *PrefStore) Save(prefs store.Preferences) {
	data, err := json.Marshal(prefs)
	if err != nil {
		return
	}
	_ = hackpadfs.WriteFullFile(p.fs, p.path, data, 0644)
}

var (
	detailCuePattern = regexp.MustCompile(`\b(in detail|detailed|more detail|full(er)? answer|verbose|everything about)\b`)
	briefCuePattern  = regexp.MustCompile(`\b(briefly|in short|keep it short|short answer|tl;?dr|quick(ly)? summary)\b`)
)

// InferDetailPreference detects a verbosity preference from phrasing.
// Returns (value, true) when the text signals one.
func InferDetailPreference(text string) (bool, bool) {
	s := strings.ToLower(text)
	switch {
	case briefCuePattern.MatchString(s):
		return false, true
	case detailCuePattern.MatchString(s):
		return true, true
	}
	return false, false
}
