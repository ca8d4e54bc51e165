// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/motolab/tuner/pkg/errors"
	"github.com/motolab/tuner/pkg/motorcycle"
)

// ErrRecordNotFound is returned for ids the registry does not hold.
var ErrRecordNotFound = errors.New(errors.ErrCodeNotFound, "motorcycle not found")

// Entry pairs a build with its id.
type Entry struct {
	ID         string                 `json:"id" yaml:"id"`
	Motorcycle *motorcycle.Motorcycle `json:"motorcycle" yaml:"motorcycle"`
}

// Registry stores builds by id. Implementations are safe for concurrent use
// and never hand out memory they still own.
type Registry interface {
	// Get returns a copy of the build. Unknown ids yield ErrRecordNotFound and create nothing.
	Get(id string) (*motorcycle.Motorcycle, error)

	// Update applies fn to the build under an exclusive lock and returns a copy of the result.
	// When fn fails the stored build is unchanged and fn's error is returned.
	Update(id string, fn func(*motorcycle.Motorcycle) error) (*motorcycle.Motorcycle, error)

	// Put stores a copy of m under id, replacing any existing build.
	// Concurrent Get and Update calls on id see either the old or the new build.
	Put(id string, m *motorcycle.Motorcycle)

	// Delete removes the build.
	Delete(id string) error

	// List returns copies of every build ordered by id.
	List() []Entry

	// Len reports the number of builds.
	Len() int
}

type record struct {
	mu      sync.RWMutex
	bike    *motorcycle.Motorcycle
	deleted bool
}

// Memory is an in-process Registry.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*record
}

// NewMemory returns an empty Memory registry.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*record)}
}

func (r *Memory) lookup(id string) (*record, error) {
	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewWithContext(ErrRecordNotFound.Code, ErrRecordNotFound.Message, map[string]any{"id": id})
	}
	return rec, nil
}

// Get implements Registry.
func (r *Memory) Get(id string) (*motorcycle.Motorcycle, error) {
	for {
		rec, err := r.lookup(id)
		if err != nil {
			return nil, err
		}

		rec.mu.RLock()
		if rec.deleted {
			// replaced by Put or removed by Delete after lookup; look again
			rec.mu.RUnlock()
			continue
		}
		bike := rec.bike.Clone()
		rec.mu.RUnlock()
		return bike, nil
	}
}

// Update implements Registry.
func (r *Memory) Update(id string, fn func(*motorcycle.Motorcycle) error) (*motorcycle.Motorcycle, error) {
	for {
		rec, err := r.lookup(id)
		if err != nil {
			return nil, err
		}

		rec.mu.Lock()
		if rec.deleted {
			rec.mu.Unlock()
			continue
		}
		return rec.apply(fn)
	}
}

// apply runs fn on a copy and commits it on success. rec.mu must be held; apply releases it.
func (rec *record) apply(fn func(*motorcycle.Motorcycle) error) (*motorcycle.Motorcycle, error) {
	defer rec.mu.Unlock()

	work := rec.bike.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	rec.bike = work
	return work.Clone(), nil
}

// Put implements Registry.
func (r *Memory) Put(id string, m *motorcycle.Motorcycle) {
	rec := &record{bike: m.Clone()}

	r.mu.Lock()
	old := r.records[id]
	r.records[id] = rec
	r.mu.Unlock()

	if old != nil {
		old.mu.Lock()
		old.deleted = true
		old.mu.Unlock()
		slog.Debug("replaced motorcycle", "id", id)
	}
}

// Delete implements Registry.
func (r *Memory) Delete(id string) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	delete(r.records, id)
	r.mu.Unlock()

	if !ok {
		return errors.NewWithContext(ErrRecordNotFound.Code, ErrRecordNotFound.Message, map[string]any{"id": id})
	}

	rec.mu.Lock()
	rec.deleted = true
	rec.mu.Unlock()
	return nil
}

// List implements Registry.
func (r *Memory) List() []Entry {
	r.mu.RLock()
	ids := make([]string, 0, len(r.records))
	recs := make(map[string]*record, len(r.records))
	for id, rec := range r.records {
		ids = append(ids, id)
		recs[id] = rec
	}
	r.mu.RUnlock()

	sort.Strings(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		rec := recs[id]
		rec.mu.RLock()
		if !rec.deleted {
			entries = append(entries, Entry{ID: id, Motorcycle: rec.bike.Clone()})
		}
		rec.mu.RUnlock()
	}
	return entries
}

// Len implements Registry.
func (r *Memory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
