package store

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Collection used by tests. Documents are kept as
// marshalled bson so the tag handling matches the real driver. A single
// mutex per collection keeps UpdateOne's match-and-write atomic, which is
// the property the ledger's compare-and-set relies on.
type Memory struct {
	mu   sync.Mutex
	docs []bson.M
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) FindOne(ctx context.Context, filter bson.M, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.docs {
		if matches(doc, filter) {
			return decodeInto(doc, out)
		}
	}
	return ErrNoDocument
}

func (m *Memory) Find(ctx context.Context, filter bson.M, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slice := reflect.ValueOf(out)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return errors.New("out must be a pointer to a slice")
	}
	elemType := slice.Elem().Type().Elem()

	result := reflect.MakeSlice(slice.Elem().Type(), 0, len(m.docs))
	for _, doc := range m.docs {
		if !matches(doc, filter) {
			continue
		}
		elem := reflect.New(elemType)
		if err := decodeInto(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Elem().Set(result)
	return nil
}

func (m *Memory) InsertOne(ctx context.Context, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal document")
	}
	var normalized bson.M
	if err := bson.Unmarshal(raw, &normalized); err != nil {
		return errors.Wrap(err, "failed to normalize document")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, normalized)
	return nil
}

func (m *Memory) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	set, ok := update["$set"].(bson.M)
	if !ok {
		return 0, errors.New("update must carry a $set document")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.docs {
		if !matches(doc, filter) {
			continue
		}
		for k, v := range set {
			doc[k] = normalizeValue(v)
		}
		return 1, nil
	}
	return 0, nil
}

func decodeInto(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal document")
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode document")
	}
	return nil
}

func normalizeValue(v interface{}) interface{} {
	raw, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return v
	}
	var wrapped bson.M
	if err := bson.Unmarshal(raw, &wrapped); err != nil {
		return v
	}
	return wrapped["v"]
}

func matches(doc bson.M, filter bson.M) bool {
	for key, want := range filter {
		got, present := doc[key]

		if operators, ok := asOperatorDoc(want); ok {
			if !matchOperators(got, present, operators) {
				return false
			}
			continue
		}

		if !present || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func asOperatorDoc(v interface{}) (bson.M, bool) {
	doc, ok := v.(bson.M)
	if !ok || len(doc) == 0 {
		return nil, false
	}
	for k := range doc {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return doc, true
}

func matchOperators(got interface{}, present bool, operators bson.M) bool {
	for op, arg := range operators {
		switch op {
		case "$in":
			if !present || !containedIn(got, arg) {
				return false
			}
		case "$ne":
			if present && valuesEqual(got, arg) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func containedIn(got, list interface{}) bool {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if valuesEqual(got, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if aid, ok := a.(primitive.ObjectID); ok {
		if bid, ok := b.(primitive.ObjectID); ok {
			return aid == bid
		}
		return false
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}

	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
