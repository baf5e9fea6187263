package runner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"stashsync/internal/reconcile"
)

// ledgerFlushEvery bounds how many rows can be lost to a killed process.
const ledgerFlushEvery = 50

var ledgerHeader = []string{"scene_id", "outcome"}

// Ledger is the append-only CSV outcome log for bulk runs. Rows survive a
// crash mid-batch, so a rerun can be diffed against the previous attempt.
type Ledger struct {
	file    *os.File
	writer  *csv.Writer
	pending int
}

// OpenLedger opens the ledger for appending, writing the header first when
// the file is new or empty.
func OpenLedger(path string) (*Ledger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat ledger: %w", err)
	}
	ledger := &Ledger{file: file, writer: csv.NewWriter(file)}
	if info.Size() == 0 {
		if err := ledger.writer.Write(ledgerHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("write ledger header: %w", err)
		}
		ledger.writer.Flush()
		if err := ledger.writer.Error(); err != nil {
			file.Close()
			return nil, fmt.Errorf("flush ledger header: %w", err)
		}
	}
	return ledger, nil
}

// Record appends one outcome row, flushing periodically.
func (l *Ledger) Record(sceneID int64, outcome reconcile.Outcome) error {
	if err := l.writer.Write([]string{strconv.FormatInt(sceneID, 10), string(outcome)}); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	l.pending++
	if l.pending >= ledgerFlushEvery {
		l.writer.Flush()
		l.pending = 0
		if err := l.writer.Error(); err != nil {
			return fmt.Errorf("flush ledger: %w", err)
		}
	}
	return nil
}

// Close flushes any buffered rows and closes the file.
func (l *Ledger) Close() error {
	l.writer.Flush()
	flushErr := l.writer.Error()
	closeErr := l.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush ledger: %w", flushErr)
	}
	return closeErr
}
