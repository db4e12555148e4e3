// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errorx

import "errors"

var (
	// ErrInvalidCapacity a segment or storage engine was constructed
	// with zero capacity.
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")

	// ErrAllocationFailure backing memory could not be obtained. There is
	// no degraded mode for a memory primitive; callers should treat this
	// as fatal.
	ErrAllocationFailure = errors.New("backing memory could not be allocated")

	// ErrBufferFull a strict push or append would exceed capacity.
	ErrBufferFull = errors.New("segment is full")

	// ErrIndexOutOfRange a query or range access lies beyond the current
	// length, or a physical range lies beyond capacity.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTransmute a size, alignment or bit-pattern validity precondition
	// was violated during byte reinterpretation.
	ErrTransmute = errors.New("byte region cannot be reinterpreted")

	// ErrReleased the storage engine behind a segment was already
	// released.
	ErrReleased = errors.New("storage already released")
)
