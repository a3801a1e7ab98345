package runner

import (
	"testing"
	"time"
)

func TestReceiptsMissingFile(t *testing.T) {
	l, err := loadReceipts(t.TempDir())
	if err != nil {
		t.Fatal("loadReceipts:", err)
	}
	if len(l.Receipts) != 0 {
		t.Errorf("fresh log has %d receipts", len(l.Receipts))
	}
	if _, ok := l.get("1.0.0", "abc"); ok {
		t.Error("get found a receipt in an empty log")
	}
}

func TestReceiptsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	l := &receiptLog{}
	l.set("1.2.0", "deadbeef", &receipt{
		Strategy:   "cmake",
		Phases:     []string{"configure", "build", "install"},
		InstallDir: "/builds/owner/repo@1.2.0-deadbeef",
		BuildTime:  time.Now().UTC(),
	})
	l.set("1.2.0", "cafe", &receipt{Strategy: "makefile", Phases: []string{"edit", "build", "install"}})
	if err := saveReceipts(dir, l); err != nil {
		t.Fatal("saveReceipts:", err)
	}

	loaded, err := loadReceipts(dir)
	if err != nil {
		t.Fatal("loadReceipts:", err)
	}
	rec, ok := loaded.get("1.2.0", "deadbeef")
	if !ok {
		t.Fatal("receipt missing after round trip")
	}
	if rec.Strategy != "cmake" {
		t.Errorf("strategy %q, want %q", rec.Strategy, "cmake")
	}
	if rec.InstallDir != "/builds/owner/repo@1.2.0-deadbeef" {
		t.Errorf("install dir %q", rec.InstallDir)
	}
	if len(rec.Phases) != 3 || rec.Phases[0] != "configure" {
		t.Errorf("phases %v", rec.Phases)
	}
	if _, ok := loaded.get("1.2.0", "beef"); ok {
		t.Error("get matched a fingerprint that was never set")
	}
}
