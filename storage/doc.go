// Copyright 2025 The ai-job-assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storage defines the persistence abstraction for lane indexes
// and the MUS serialization helpers shared by its implementations.
//
// Indexes are coarse-grained records: one per lane, replaced wholesale on
// every rebuild. That shape keeps the interface small (save, load,
// delete, list) and makes rebuild atomicity the storage layer's only
// consistency obligation — either the new record lands or the old one
// survives.
//
// The storage/badger sub-package provides the BadgerDB implementation,
// including an in-memory mode for tests.
package storage
