// Copyright 2025 Bloop16
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


package core

import (
	"sort"
	"sync"
)

// Registry tracks which datapoints are currently enabled. The readable set
// contains every datapoint eligible for retrieval; the writable set is the
// subset that may be changed by resolved control requests. The registry is
// maintained by the host integration and consumed by the resolver and the
// control service.
type Registry struct {
	mu       sync.RWMutex
	readable map[string]struct{}
	writable map[string]struct{}
	version  uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		readable: make(map[string]struct{}),
		writable: make(map[string]struct{}),
	}
}

// Update replaces both sets. Writable entries that are not also readable
// are dropped: the writable set is a subset of the readable set by
// construction. Each update bumps the registry version so consumers can
// rebuild derived state (such as the resolver's alias table) lazily.
func (r *Registry) Update(readable, writable []string) {
	nextReadable := make(map[string]struct{}, len(readable))
	for _, id := range readable {
		if id != "" {
			nextReadable[id] = struct{}{}
		}
	}
	nextWritable := make(map[string]struct{}, len(writable))
	for _, id := range writable {
		if _, ok := nextReadable[id]; ok {
			nextWritable[id] = struct{}{}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.readable = nextReadable
	r.writable = nextWritable
	r.version++
}

// IsReadable reports whether the datapoint is in the readable set.
func (r *Registry) IsReadable(datapointID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.readable[datapointID]
	return ok
}

// IsWritable reports whether the datapoint is in the writable set.
func (r *Registry) IsWritable(datapointID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.writable[datapointID]
	return ok
}

// Readable returns a sorted snapshot of the readable set.
func (r *Registry) Readable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.readable))
	for id := range r.readable {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of readable datapoints.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readable)
}

// Version returns a counter that changes on every Update.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
