// Copyright 2025 The ai-job-assistant Authors
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

import "errors"

// Domain validation errors
var (
	// ErrInvalidIndex indicates an Index failed validation.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrUnknownLane indicates a lane name outside KnownLanes.
	ErrUnknownLane = errors.New("unknown lane")

	// ErrInvalidBankType indicates a BankType outside the defined values.
	ErrInvalidBankType = errors.New("invalid bank type")

	// ErrInvalidDimension indicates a non-positive embedding dimension.
	ErrInvalidDimension = errors.New("dimension must be positive")

	// ErrDimensionMismatch indicates a chunk vector whose length differs
	// from the Index dimension.
	ErrDimensionMismatch = errors.New("chunk vector length does not match index dimension")

	// ErrEmptyChunkID indicates a chunk with no identifier.
	ErrEmptyChunkID = errors.New("chunk id cannot be empty")

	// ErrEmptyChunkText indicates a chunk with no text.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")
)
