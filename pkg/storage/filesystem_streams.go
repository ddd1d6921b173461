package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/cascade/pkg/domain"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// The update and event trails are append-only JSONL streams: one record per
// line, never rewritten.

// AppendUpdate implements okr.Repository.
func (r *FilesystemRepository) AppendUpdate(_ context.Context, u okr.TaskUpdate) error {
	return r.appendLine(UpdatesFile, u)
}

// UpdatesOf implements okr.Repository.
func (r *FilesystemRepository) UpdatesOf(_ context.Context, taskID string) ([]okr.TaskUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []okr.TaskUpdate
	err := r.scanLines(UpdatesFile, func(line []byte) error {
		var u okr.TaskUpdate
		if err := json.Unmarshal(line, &u); err != nil {
			return fmt.Errorf("corrupt update record: %w", err)
		}
		if u.TaskID == taskID {
			out = append(out, u)
		}
		return nil
	})
	return out, err
}

// RecordEvent implements domain.AuditRepository.
func (r *FilesystemRepository) RecordEvent(event domain.Event) error {
	return r.appendLine(EventsFile, event)
}

// LoadEvents implements domain.AuditRepository.
func (r *FilesystemRepository) LoadEvents() ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Event
	err := r.scanLines(EventsFile, func(line []byte) error {
		var e domain.Event
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("corrupt audit event: %w", err)
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (r *FilesystemRepository) appendLine(filename string, record interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append to %s: %w", filename, err)
	}
	return nil
}

func (r *FilesystemRepository) scanLines(filename string, fn func(line []byte) error) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
