package logging

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

type stubTx struct {
	rollbackErr error
}

func (s *stubTx) Rollback() error {
	return s.rollbackErr
}

func TestSafeCloseWithLogging(t *testing.T) {
	t.Run("silent on success", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{}, logger, "dataset_close")
		assert.Empty(t, buf.String())
	})

	t.Run("logs close failure", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "dataset_close")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"dataset_close"`)
	})

	t.Run("nil closer is ignored", func(t *testing.T) {
		SafeCloseWithLogging(nil, nil, "noop")
	})
}

func TestSafeRollbackWithLogging(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"successful rollback", nil, false},
		{"already committed", sql.ErrTxDone, false},
		{"wrapped already committed", fmt.Errorf("insert: %w", sql.ErrTxDone), false},
		{"real failure", assert.AnError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewStructuredLogger(&buf, slog.LevelInfo)

			SafeRollbackWithLogging(&stubTx{rollbackErr: tt.err}, logger, "insert_dataset")

			if tt.wantLog {
				assert.Contains(t, buf.String(), `"msg":"failed to rollback transaction"`)
				assert.Contains(t, buf.String(), `"component":"database"`)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestHandleDeferredError(t *testing.T) {
	t.Run("reports cleanup failure when the function succeeded", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		run := func() (err error) {
			defer HandleDeferredError(&err, func() error { return assert.AnError }, logger, "close_dataset")
			return nil
		}

		err := run()
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "close_dataset failed")
		assert.Contains(t, buf.String(), `"msg":"deferred operation failed"`)
	})

	t.Run("keeps the original error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)
		original := fmt.Errorf("build failed")

		run := func() (err error) {
			defer HandleDeferredError(&err, func() error { return assert.AnError }, logger, "close_dataset")
			return original
		}

		assert.Equal(t, original, run())
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})
}
