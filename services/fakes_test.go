package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
)

// memStore is an in-memory database.Store. Documents round-trip through
// JSON, which matches the wire shape closely enough for the filters the
// services use (the field names in filters equal the JSON tags).
type memStore struct {
	mu   sync.Mutex
	data map[string]map[string]map[string]any

	// beforeCAS, when set, runs before each UpdateFieldsIf and can mutate
	// the stored documents to simulate a concurrent writer.
	beforeCAS func(collection, id string)

	// failOps maps "op:collection" to a forced error.
	failOps map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		data:    make(map[string]map[string]map[string]any),
		failOps: make(map[string]error),
	}
}

func (s *memStore) fail(op, collection string) error {
	return s.failOps[op+":"+collection]
}

func toDoc(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func sameJSON(a, b any) bool {
	ab, err1 := json.Marshal(a)
	bb, err2 := json.Marshal(b)
	return err1 == nil && err2 == nil && bytes.Equal(ab, bb)
}

func (s *memStore) coll(name string) map[string]map[string]any {
	c, ok := s.data[name]
	if !ok {
		c = make(map[string]map[string]any)
		s.data[name] = c
	}
	return c
}

func (s *memStore) Create(_ context.Context, collection string, doc any) (string, error) {
	if err := s.fail("create", collection); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := toDoc(doc)
	if err != nil {
		return "", err
	}
	id, _ := m["id"].(string)
	if id == "" {
		return "", fmt.Errorf("document has no id")
	}
	s.coll(collection)[id] = m
	return id, nil
}

func (s *memStore) Get(_ context.Context, collection, id string, out any) error {
	if err := s.fail("get", collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return database.ErrNotFound
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (s *memStore) UpdateFields(_ context.Context, collection, id string, fields map[string]any) error {
	if err := s.fail("update", collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return database.ErrNotFound
	}
	return applyFields(doc, fields)
}

func (s *memStore) UpdateFieldsIf(_ context.Context, collection, id string, cond map[string]any, fields map[string]any) (bool, error) {
	if err := s.fail("updateif", collection); err != nil {
		return false, err
	}
	if s.beforeCAS != nil {
		s.beforeCAS(collection, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return false, nil
	}
	for k, v := range cond {
		if !sameJSON(doc[k], v) {
			return false, nil
		}
	}
	if err := applyFields(doc, fields); err != nil {
		return false, err
	}
	return true, nil
}

func (s *memStore) Increment(_ context.Context, collection, id, field string, delta int64) error {
	if err := s.fail("increment", collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return database.ErrNotFound
	}
	cur, _ := doc[field].(float64)
	doc[field] = cur + float64(delta)
	return nil
}

func (s *memStore) Delete(_ context.Context, collection, id string) error {
	if err := s.fail("delete", collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coll(collection)[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.coll(collection), id)
	return nil
}

func (s *memStore) Query(_ context.Context, collection string, filter map[string]any, out any) error {
	if err := s.fail("query", collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []map[string]any
	for _, doc := range s.coll(collection) {
		ok := true
		for k, v := range filter {
			if !sameJSON(doc[k], v) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, doc)
		}
	}
	b, err := json.Marshal(matched)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// applyFields mimics a $set: values round-trip through JSON so the stored
// shape matches what Create produced.
func applyFields(doc map[string]any, fields map[string]any) error {
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var jv any
		if err := json.Unmarshal(b, &jv); err != nil {
			return err
		}
		doc[k] = jv
	}
	return nil
}

// count returns how many documents a collection holds.
func (s *memStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.coll(collection))
}

type deptSend struct {
	order      models.Order
	department string
	items      []models.OrderItem
}

// fakeNotifier records every outbound message; sendErr makes all sends
// fail to exercise the best-effort paths.
type fakeNotifier struct {
	mu            sync.Mutex
	pendingOrders []models.PendingOrder
	deptSends     []deptSend
	paymentReqs   []models.PaymentConfirmation
	adminTexts    []string
	chatTexts     []string
	acks          []string
	sendErr       error
}

func (n *fakeNotifier) SendPendingOrder(_ context.Context, order models.PendingOrder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pendingOrders = append(n.pendingOrders, order)
	return n.sendErr
}

func (n *fakeNotifier) SendDepartmentOrder(_ context.Context, order models.Order, department string, items []models.OrderItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deptSends = append(n.deptSends, deptSend{order: order, department: department, items: items})
	return n.sendErr
}

func (n *fakeNotifier) SendPaymentRequest(_ context.Context, conf models.PaymentConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paymentReqs = append(n.paymentReqs, conf)
	return n.sendErr
}

func (n *fakeNotifier) SendAdminText(_ context.Context, _, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adminTexts = append(n.adminTexts, text)
	return n.sendErr
}

func (n *fakeNotifier) SendTextTo(_ context.Context, _ int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chatTexts = append(n.chatTexts, text)
	return n.sendErr
}

func (n *fakeNotifier) AnswerCallback(_ context.Context, callbackID, text string, _ bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.acks = append(n.acks, callbackID+":"+text)
	return n.sendErr
}
