package services

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/HadarPadael/facyBook-Server/models"
	"github.com/HadarPadael/facyBook-Server/utils"
)

// memStoreKeys maps each table to its key attribute.
var memStoreKeys = map[string]string{
	models.UsersTable:    "nickname",
	models.PostsTable:    "postId",
	models.CommentsTable: "commentId",
	models.TokensTable:   "token",
}

// MemStore is an in-memory Store used by the tests and for running the
// server without AWS. It mirrors the adapter's semantics: attribute-map
// documents, set updates that no-op on missing keys, and string sets whose
// last member removal drops the field.
type MemStore struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

var _ Store = (*MemStore)(nil)

// GetItem loads a document, or ErrNotFound.
func (ms *MemStore) GetItem(_ context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.tables[table][keyValue(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

// PutItem marshals and stores a document.
func (ms *MemStore) PutItem(_ context.Context, table string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.tables[table] == nil {
		ms.tables[table] = make(map[string]map[string]types.AttributeValue)
	}

	ms.tables[table][utils.ExtractString(marshaled, memStoreKeys[table])] = marshaled
	return nil
}

// DeleteItem removes a document; absent keys are not an error.
func (ms *MemStore) DeleteItem(_ context.Context, table string, key map[string]types.AttributeValue) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.tables[table], keyValue(key))
	return nil
}

// ScanItems reads a whole table into result.
func (ms *MemStore) ScanItems(_ context.Context, table string, result interface{}) error {
	ms.mu.Lock()
	items := make([]map[string]types.AttributeValue, 0, len(ms.tables[table]))
	for _, item := range ms.tables[table] {
		items = append(items, item)
	}
	ms.mu.Unlock()

	return attributevalue.UnmarshalListOfMaps(items, result)
}

// AddToSet adds value to a string-set field of an existing document; missing
// documents are a no-op.
func (ms *MemStore) AddToSet(_ context.Context, table string, key map[string]types.AttributeValue, field, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.tables[table][keyValue(key)]
	if !ok {
		return nil
	}

	members := setMembers(item, field)
	for _, m := range members {
		if m == value {
			return nil
		}
	}
	item[field] = &types.AttributeValueMemberSS{Value: append(members, value)}
	return nil
}

// RemoveFromSet removes value from a string-set field; absent members and
// missing documents are no-ops.
func (ms *MemStore) RemoveFromSet(_ context.Context, table string, key map[string]types.AttributeValue, field, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.tables[table][keyValue(key)]
	if !ok {
		return nil
	}

	var remaining []string
	for _, m := range setMembers(item, field) {
		if m != value {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == 0 {
		delete(item, field)
	} else {
		item[field] = &types.AttributeValueMemberSS{Value: remaining}
	}
	return nil
}

// SetStringSet replaces a string-set field of an existing document, or
// ErrNotFound.
func (ms *MemStore) SetStringSet(_ context.Context, table string, key map[string]types.AttributeValue, field string, values []string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.tables[table][keyValue(key)]
	if !ok {
		return ErrNotFound
	}

	if len(values) == 0 {
		delete(item, field)
	} else {
		item[field] = &types.AttributeValueMemberSS{Value: values}
	}
	return nil
}

func keyValue(key map[string]types.AttributeValue) string {
	for _, attr := range key {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

func setMembers(item map[string]types.AttributeValue, field string) []string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberSS); ok {
			return v.Value
		}
	}
	return nil
}
