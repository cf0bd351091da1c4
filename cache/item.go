package cache

import (
	"fmt"
	"reflect"
)

// Item is a cacheable unit of content.
//
// ID identifies the item within its level, Size is the capacity it consumes,
// and Header is used only to pick the level the item is routed to. Payload
// is opaque to the cache.
//
// Items are values: the cache never edits a stored item, Update replaces it.
type Item[K comparable, V any] struct {
	ID      K
	Size    int
	Header  string
	Payload V
}

// Equal reports whether all four fields of i and o are equal.
// Payloads are compared deeply so slice payloads such as []byte work.
func (i Item[K, V]) Equal(o Item[K, V]) bool {
	return i.ID == o.ID &&
		i.Size == o.Size &&
		i.Header == o.Header &&
		reflect.DeepEqual(i.Payload, o.Payload)
}

// String renders the item on one line.
func (i Item[K, V]) String() string {
	return fmt.Sprintf("CONTENT ID: %v SIZE: %d HEADER: %s CONTENT: %v",
		i.ID, i.Size, i.Header, i.Payload)
}
