package bible

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultVersion is used whenever a request does not name a translation.
const DefaultVersion = "NVI"

// versionFiles maps the supported translations to their file names under the
// bibles directory.
var versionFiles = map[string]string{
	"NVI":     "spa-NVI.xml",
	"RVR1960": "spa-RVR1960.xml",
}

// Versions lists the supported translations.
func Versions() []string {
	return []string{"NVI", "RVR1960"}
}

// Loader reads and caches bible translations from disk.
type Loader struct {
	dir string

	mu     sync.Mutex
	bibles map[string]*Bible
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, bibles: make(map[string]*Bible)}
}

// Load returns the parsed translation for version, reading the file on first
// use. Unknown versions fall back to the default translation, matching the
// browser's lenient lookup behavior.
func (l *Loader) Load(version string) (*Bible, error) {
	if version == "" {
		version = DefaultVersion
	}
	filename, ok := versionFiles[version]
	if !ok {
		version = DefaultVersion
		filename = versionFiles[version]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.bibles[version]; ok {
		return b, nil
	}

	f, err := os.Open(filepath.Join(l.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to open bible file for %s: %w", version, err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bible %s: %w", version, err)
	}
	if b.Version == "" {
		b.Version = version
	}

	l.bibles[version] = b
	return b, nil
}
