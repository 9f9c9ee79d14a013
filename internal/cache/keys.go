package cache

import (
	"slices"
	"strings"

	"github.com/actuallystonmai/catalog-service/internal/domain"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// segmentEscaper keeps values from containing the separator, so distinct
// name/value lists always give distinct keys.
var segmentEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

// Key accumulates name/value pairs after the index name.
type Key struct {
	parts []string
}

func NewKey(index domain.Index) Key {
	return Key{parts: []string{index.String()}}
}

// With appends a pair; empty values are skipped so unset params never
// appear in the key. "%" and ":" in values are percent-escaped.
func (k Key) With(name, value string) Key {
	if value == "" {
		return k
	}
	parts := slices.Clip(k.parts)
	return Key{parts: append(parts, name, segmentEscaper.Replace(value))}
}

func (k Key) String() string {
	return strings.Join(k.parts, KeySeparator)
}

// ByIDKey is the key of a single document: {index}::id::{id}.
func ByIDKey(index domain.Index, id string) string {
	return NewKey(index).With("id", id).String()
}

// IndexPattern matches every key derived from index.
func IndexPattern(index domain.Index) string {
	return index.String() + KeySeparator + "*"
}
