package runner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Module directory layout under the builds root:
//
//	<escaped>/                               # module-level dir
//	  .receipts.json                         # maps "version-fingerprint" → receipt
//	  .lock                                  # build mutex
//	<escaped>@<version>-<fingerprint>/       # install output
//	<escaped>@<version>-<fingerprint>.work/  # build tree, removed on success
const receiptFile = ".receipts.json"

// receipt records one completed build of a configuration.
type receipt struct {
	Strategy   string    `json:"strategy"`
	Phases     []string  `json:"phases"`
	InstallDir string    `json:"install_dir"`
	BuildTime  time.Time `json:"build_time"`
}

// receiptLog maps "version-fingerprint" keys to receipts.
type receiptLog struct {
	Receipts map[string]*receipt `json:"receipts"`
}

func receiptKey(version, fingerprint string) string {
	return version + "-" + fingerprint
}

func (l *receiptLog) get(version, fingerprint string) (*receipt, bool) {
	r, ok := l.Receipts[receiptKey(version, fingerprint)]
	return r, ok
}

func (l *receiptLog) set(version, fingerprint string, r *receipt) {
	if l.Receipts == nil {
		l.Receipts = make(map[string]*receipt)
	}
	l.Receipts[receiptKey(version, fingerprint)] = r
}

// loadReceipts reads the receipt log in dir. A missing file is an empty
// log, not an error.
func loadReceipts(dir string) (*receiptLog, error) {
	data, err := os.ReadFile(filepath.Join(dir, receiptFile))
	if os.IsNotExist(err) {
		return &receiptLog{}, nil
	}
	if err != nil {
		return nil, err
	}
	var l receiptLog
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// saveReceipts writes the receipt log to dir.
func saveReceipts(dir string, l *receiptLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, receiptFile), data, 0o644)
}
