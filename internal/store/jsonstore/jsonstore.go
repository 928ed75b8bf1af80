// Package jsonstore moves plain task records in and out of a Store as JSON.
//
// A seed file is read once into a fresh store; the store itself stays in memory.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/Makepad-fr/taskboard/internal/errors"
	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store"
)

// Load reads a JSON array of task records from path. "~" is expanded.
// A missing file yields an empty slice.
func Load(path string) ([]store.CreateInput, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "expand %s", path)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []store.CreateInput{}, nil
		}
		return nil, errors.WithStackTraceAndPrefix(err, "read file")
	}
	return Decode(b)
}

// Decode parses a JSON array of task records.
func Decode(b []byte) ([]store.CreateInput, error) {
	var inputs []store.CreateInput
	if err := json.Unmarshal(b, &inputs); err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "json unmarshal")
	}
	if inputs == nil {
		inputs = []store.CreateInput{}
	}
	return inputs, nil
}

// RecordError ties a seeding failure to the position of its record.
type RecordError struct {
	Index int
	Err   error
}

func (err RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", err.Index, err.Err)
}

func (err RecordError) Unwrap() error { return err.Err }

// Seed creates every input in order. Records the store rejects are skipped and
// reported together; the others are still created.
func Seed(s *store.Store, inputs []store.CreateInput) error {
	var errs *errors.MultiError
	for i, in := range inputs {
		if _, err := s.Create(in); err != nil {
			errs = errs.Append(RecordError{Index: i, Err: err})
		}
	}
	return errs.ErrorOrNil()
}

// Encode writes tasks as an indented JSON array.
func Encode(w io.Writer, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return errors.WithStackTraceAndPrefix(err, "json marshal")
	}
	return nil
}
