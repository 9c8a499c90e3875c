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

package storage

import (
	"github.com/A-makarim/ai-job-assistant/core"
)

// MarshalIndex serializes an Index to bytes.
func MarshalIndex(index *core.Index) []byte {
	buf := make([]byte, core.IndexMUS.Size(*index))
	core.IndexMUS.Marshal(*index, buf)
	return buf
}

// UnmarshalIndex deserializes an Index from bytes.
func UnmarshalIndex(data []byte) (*core.Index, error) {
	index, _, err := core.IndexMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &index, nil
}
