// Package config assembles the configuration object merged from -e/-E
// payloads before a program runs.
//
// Payloads are decoded by an incremental JSON tokenizer fed in small fixed
// chunks, so memory stays bounded regardless of input size, and merged into
// a single [Object] in command-line order, optionally nested one level under
// a namespace prefix.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Sentinel errors reported while decoding configuration payloads.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotObject   = errors.New("value is not a JSON object")
)

// chunkSize bounds the number of bytes handed to the tokenizer per read.
const chunkSize = 128

// json decodes and encodes with standard-library-compatible semantics.
//
//nolint:gochecknoglobals
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Object is a configuration mapping from key to decoded JSON value.
// Namespaced merges nest a child map[string]any one level deep.
type Object map[string]any

// Decode reads exactly one top-level JSON value from r and requires it to be
// an object. The reader is consumed in chunks of at most chunkSize bytes by
// an incremental tokenizer; on any tokenizer error, or when the decoded
// value is not an object, nothing partial is returned.
func Decode(r io.Reader) (Object, error) {
	it := jsoniter.Parse(json, r, chunkSize)

	v := it.Read()
	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, it.Error)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	return Object(obj), nil
}

// Merge inserts every key of src into the receiver, overwriting same-named
// earlier entries. With a non-empty prefix, keys merge into a child object
// stored under that prefix: the child is created on first use and reused by
// later merges into the same namespace, so unrelated keys accumulate.
func (o Object) Merge(prefix string, src Object) {
	dst := map[string]any(o)

	if prefix != "" {
		child, ok := o[prefix].(map[string]any)
		if !ok {
			child = map[string]any{}
			o[prefix] = child
		}

		dst = child
	}

	for key, val := range src {
		dst[key] = val
	}
}

// SplitPrefix splits a [prefix=]payload option argument into its optional
// namespace prefix and payload. The prefix segment is recognized only when
// every byte before the first '=' could plausibly be a key (letters, digits,
// '_', '.', or '-'); this keeps JSON payloads containing '=' inside string
// values intact.
func SplitPrefix(arg string) (prefix, payload string) {
	i := strings.IndexByte(arg, '=')
	if i < 0 || !validPrefix(arg[:i]) {
		return "", arg
	}

	return arg[:i], arg[i+1:]
}

func validPrefix(s string) bool {
	for i := range len(s) {
		c := s[i]

		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '-':
		default:
			return false
		}
	}

	return true
}
