package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceAndRestore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))

	Get().Infow("Transaction added", "id", 7)
	Get().Debugw("dropped below level")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "Transaction added" || entry.ContextMap()["id"] != int64(7) {
		t.Errorf("unexpected entry: %+v", entry)
	}

	restore()
	Get().Info("after restore")
	if logs.Len() != 1 {
		t.Errorf("expected observer detached after restore, got %d entries", logs.Len())
	}
}

func TestGetInitializesLazily(t *testing.T) {
	if Get() == nil {
		t.Fatal("expected a logger")
	}
	Sync()
}
