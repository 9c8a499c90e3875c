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

import "fmt"

// ValidateBankType validates that a BankType has a valid value.
func ValidateBankType(bankType BankType) error {
	if bankType != BankTypeFacts && bankType != BankTypeVoice {
		return fmt.Errorf("%w: value %d", ErrInvalidBankType, bankType)
	}
	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Text must not be empty
//
// NOT validated:
//   - Vector length (checked against the owning Index by ValidateIndex)
//   - Norm (zero is valid for zero vectors)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidIndex)
	}

	if chunk.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, ErrEmptyChunkID)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, ErrEmptyChunkText)
	}

	return nil
}

// ValidateIndex validates an Index according to domain rules.
//
// Validation rules:
//   - Lane must be one of the known lanes
//   - BankType must be valid
//   - Dimension must be positive
//   - Every chunk must pass ValidateChunk and carry a vector of exactly
//     Dimension entries
//
// An Index with zero chunks is valid; empty input yields an empty Index,
// not an error.
func ValidateIndex(index *Index) error {
	if index == nil {
		return fmt.Errorf("%w: index is nil", ErrInvalidIndex)
	}

	if !index.Lane.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidIndex, ErrUnknownLane, index.Lane)
	}

	if err := ValidateBankType(index.BankType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}

	if index.Dimension <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, ErrInvalidDimension)
	}

	for i := range index.Chunks {
		chunk := &index.Chunks[i]
		if err := ValidateChunk(chunk); err != nil {
			return err
		}
		if len(chunk.Vector) != index.Dimension {
			return fmt.Errorf("%w: chunk %s has %d entries, index dimension is %d",
				ErrDimensionMismatch, chunk.Id, len(chunk.Vector), index.Dimension)
		}
	}

	return nil
}
