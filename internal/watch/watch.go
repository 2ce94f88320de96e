// Package watch follows snapshot announcements for an export instance.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/dyluth/fathom/internal/export"
)

// OutputFormat selects how snapshot events are written.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatJSON    OutputFormat = "json"
)

const pollInterval = 200 * time.Millisecond

// Options controls how events are written and when following stops.
type Options struct {
	Format OutputFormat
	Limit  int         // Stop after this many events, 0 = no limit
	Logger *zap.Logger // Nil disables logging
}

// Stream writes every snapshot announced on sub until ctx is done, the
// subscription closes or opts.Limit events have been written.
// Returns the number of events written. Malformed announcements are logged
// and skipped.
func Stream(ctx context.Context, sub *export.Subscription, w io.Writer, opts Options) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	written := 0
	for opts.Limit == 0 || written < opts.Limit {
		select {
		case <-ctx.Done():
			return written, nil

		case err, ok := <-sub.Errors():
			if !ok {
				return written, nil
			}
			logger.Warn("Skipping snapshot event", zap.Error(err))

		case snapshot, ok := <-sub.Events():
			if !ok {
				return written, nil
			}
			if err := writeEvent(w, snapshot, opts.Format); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// PollForSnapshot polls the stored snapshot until its ID differs from
// previousID. An empty previousID matches any stored snapshot.
// Polls every 200ms until ctx is done.
func PollForSnapshot(ctx context.Context, client *export.Client, previousID string) (*export.Snapshot, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		snapshot, err := client.GetSnapshot(ctx)
		switch {
		case err == nil && snapshot.ID != previousID:
			return snapshot, nil
		case err != nil && !export.IsNotFound(err):
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to query snapshot: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll writes every new snapshot stored for the client's instance, with the
// same stopping rules as Stream. The snapshot present when Poll starts is
// not written.
func Poll(ctx context.Context, client *export.Client, w io.Writer, opts Options) (int, error) {
	previousID := ""
	current, err := client.GetSnapshot(ctx)
	switch {
	case err == nil:
		previousID = current.ID
	case !export.IsNotFound(err):
		return 0, fmt.Errorf("failed to query snapshot: %w", err)
	}

	written := 0
	for opts.Limit == 0 || written < opts.Limit {
		snapshot, err := PollForSnapshot(ctx, client, previousID)
		if err != nil {
			if ctx.Err() != nil {
				return written, nil
			}
			return written, err
		}
		if err := writeEvent(w, snapshot, opts.Format); err != nil {
			return written, err
		}
		previousID = snapshot.ID
		written++
	}
	return written, nil
}

func writeEvent(w io.Writer, snapshot *export.Snapshot, format OutputFormat) error {
	if format == OutputFormatJSON {
		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot event: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	_, err := fmt.Fprintln(w, FormatEvent(snapshot))
	return err
}

// FormatEvent renders a snapshot announcement as one human-readable line.
func FormatEvent(s *export.Snapshot) string {
	created := time.UnixMilli(s.CreatedAtMs).UTC().Format(time.RFC3339)
	return fmt.Sprintf("[%s] 📦 Snapshot published: id=%s instance=%s (%d themes, %d pieces)",
		created, s.ID, s.Instance, s.Themes, s.Pieces)
}
