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

// Package castx reinterprets raw byte regions as typed record slices and
// back, without copying and without semantic conversion.
//
// Reinterpretation is only permitted for plain fixed-layout record types:
// every bit pattern of the correct size and alignment must be a valid value.
// That excludes pointers of any kind, bool, and structs with padding bytes.
// Preconditions are verified before any reinterpretation takes place; a
// violation yields an error wrapping errorx.ErrTransmute and never reads
// past the checked length.
package castx

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/TimeWtr/TurboRing/errorx"
)

// Caster converts between byte regions and typed record slices.
//
// View and Bytes are zero copy: the returned slice aliases the input memory.
// Copy returns an owned slice that is independent of the input region.
type Caster[T any] interface {
	// View reinterprets b as a slice of records without copying.
	View(b []byte) ([]T, error)

	// Copy reinterprets b and returns an owned copy of the records.
	Copy(b []byte) ([]T, error)

	// Bytes exposes the raw bytes behind a record slice without copying.
	Bytes(records []T) ([]byte, error)
}

// Checked returns a caster that validates size, alignment and bit-pattern
// validity of T at every call.
func Checked[T any]() Caster[T] {
	return checkedCaster[T]{}
}

// Proven returns a caster whose bit-pattern validity proof for T is
// discharged once, here. Ineligible types are rejected before any caster
// exists; calls on the returned caster only re-check size and alignment.
//
// For inputs that pass the checks, Proven and Checked casters produce
// identical results.
func Proven[T any]() (Caster[T], error) {
	if err := proveLayout(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}
	return provenCaster[T]{}, nil
}

type checkedCaster[T any] struct{}

func (checkedCaster[T]) View(b []byte) ([]T, error) {
	if err := proveLayout(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}
	return view[T](b)
}

func (c checkedCaster[T]) Copy(b []byte) ([]T, error) {
	records, err := c.View(b)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(records))
	copy(out, records)
	return out, nil
}

func (checkedCaster[T]) Bytes(records []T) ([]byte, error) {
	if err := proveLayout(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}
	return bytesOf(records), nil
}

type provenCaster[T any] struct{}

func (provenCaster[T]) View(b []byte) ([]T, error) {
	return view[T](b)
}

func (c provenCaster[T]) Copy(b []byte) ([]T, error) {
	records, err := c.View(b)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(records))
	copy(out, records)
	return out, nil
}

func (provenCaster[T]) Bytes(records []T) ([]byte, error) {
	return bytesOf(records), nil
}

// view builds the typed slice after checking the size and alignment
// preconditions. Bit-pattern validity of T is the caller's obligation.
func view[T any](b []byte) ([]T, error) {
	if len(b) == 0 {
		return nil, nil
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(b)%size != 0 {
		return nil, fmt.Errorf("%w: region of %d bytes is not a multiple of record size %d",
			errorx.ErrTransmute, len(b), size)
	}

	ptr := unsafe.Pointer(unsafe.SliceData(b))
	if align := unsafe.Alignof(zero); uintptr(ptr)%align != 0 {
		return nil, fmt.Errorf("%w: region start %#x is not aligned to %d",
			errorx.ErrTransmute, uintptr(ptr), align)
	}

	return unsafe.Slice((*T)(ptr), len(b)/size), nil
}

// bytesOf exposes record memory as bytes. A []T is always at least as
// aligned as byte, so this direction needs no precondition beyond the
// layout proof.
func bytesOf[T any](records []T) []byte {
	if len(records) == 0 {
		return nil
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(records)))
	return unsafe.Slice(ptr, len(records)*size)
}

// proveLayout walks the type and rejects anything whose byte representation
// is not meaningful independent of its address, or for which some bit
// patterns are invalid values.
func proveLayout(t reflect.Type) error {
	if t.Size() == 0 {
		return fmt.Errorf("%w: %s is a zero sized type", errorx.ErrTransmute, t)
	}
	return fixedLayout(t, t)
}

func fixedLayout(root, t reflect.Type) error {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil

	case reflect.Array:
		return fixedLayout(root, t.Elem())

	case reflect.Struct:
		var fields uintptr
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := fixedLayout(root, f.Type); err != nil {
				return err
			}
			fields += f.Type.Size()
		}
		// Padding bytes would make the byte representation ambiguous.
		if fields != t.Size() {
			return fmt.Errorf("%w: struct %s contains padding bytes", errorx.ErrTransmute, root)
		}
		return nil

	case reflect.Bool:
		return fmt.Errorf("%w: bool in %s does not permit every bit pattern", errorx.ErrTransmute, root)

	default:
		return fmt.Errorf("%w: %s in %s is not plain fixed-layout data", errorx.ErrTransmute, t.Kind(), root)
	}
}
