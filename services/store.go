package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store is the document-store surface the services depend on. Each table
// holds documents keyed by a single string attribute.
//
// AddToSet and RemoveFromSet are atomic per call: they mutate one string-set
// field of one document without a read-modify-write of the whole item, and
// they are no-ops when the keyed document does not exist. Those two
// primitives are the only way friend and request sets are mutated.
type Store interface {
	// GetItem loads a document, or ErrNotFound.
	GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)

	// PutItem creates or replaces a document.
	PutItem(ctx context.Context, table string, item interface{}) error

	// DeleteItem removes a document; deleting an absent key is not an error.
	DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error

	// ScanItems reads every document in a table into result, a pointer to a
	// slice of structs.
	ScanItems(ctx context.Context, table string, result interface{}) error

	// AddToSet adds value to a string-set field, creating the field if
	// needed. Adding an existing member is a no-op (set semantics).
	AddToSet(ctx context.Context, table string, key map[string]types.AttributeValue, field, value string) error

	// RemoveFromSet removes value from a string-set field. Removing an
	// absent member is a no-op.
	RemoveFromSet(ctx context.Context, table string, key map[string]types.AttributeValue, field, value string) error

	// SetStringSet replaces a string-set field wholesale. An empty values
	// slice clears the field.
	SetStringSet(ctx context.Context, table string, key map[string]types.AttributeValue, field string, values []string) error
}

// StringKey builds a single-attribute document key.
func StringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}
