package solbind

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// tagName is the struct tag key that maps event struct fields to ABI inputs.
// Its value is "<abiName>,<solidityType>" with an optional ",indexed".
const tagName = "solbind"

// Event is a typed accessor for one event of a contract. T is a struct
// whose fields mirror the event inputs in order, each carrying a solbind tag.
type Event[T any] struct {
	contract *Contract
	name     string
	abiEvent abi.Event
	fields   []eventField
	err      error
}

// EventLog is a decoded event together with the raw log it came from.
type EventLog[T any] struct {
	Event *T
	Log   types.Log
}

// FilterOptions selects the block range of a log query. A nil End means the
// latest block.
type FilterOptions struct {
	Start uint64
	End   *uint64
}

type eventField struct {
	field   int
	name    string
	solType string
	indexed bool
}

// NewEvent returns the accessor for the event with the given ABI key.
// Mismatches between T and the ABI are reported by the accessor's methods.
func NewEvent[T any](c *Contract, name string) *Event[T] {
	e := &Event[T]{contract: c, name: name}
	if c == nil {
		e.err = ErrNilClient
		return e
	}
	ev, ok := c.abi.Events[name]
	if !ok {
		e.err = fmt.Errorf("%w: %q on %s", ErrEventNotFound, name, c.address.Hex())
		return e
	}
	e.abiEvent = ev
	e.fields, e.err = eventFields[T](ev)
	return e
}

// eventFields reads the solbind tags of T and checks them against the ABI.
func eventFields[T any](ev abi.Event) ([]eventField, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("solbind: event %q: %s is not a struct", ev.Name, typ)
	}
	var fields []eventField
	for i := 0; i < typ.NumField(); i++ {
		tag, ok := typ.Field(i).Tag.Lookup(tagName)
		if !ok {
			continue
		}
		parts := strings.Split(tag, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("solbind: event %q: malformed tag %q on field %s", ev.Name, tag, typ.Field(i).Name)
		}
		fields = append(fields, eventField{
			field:   i,
			name:    parts[0],
			solType: parts[1],
			indexed: len(parts) > 2 && parts[2] == "indexed",
		})
	}
	if len(fields) != len(ev.Inputs) {
		return nil, fmt.Errorf("solbind: event %q has %d inputs, %s maps %d", ev.Name, len(ev.Inputs), typ, len(fields))
	}
	for i, f := range fields {
		in := ev.Inputs[i]
		if f.solType != in.Type.String() || f.indexed != in.Indexed {
			return nil, fmt.Errorf("solbind: event %q input %d is %s (indexed=%t), field %s says %s (indexed=%t)",
				ev.Name, i, in.Type, in.Indexed, typ.Field(f.field).Name, f.solType, f.indexed)
		}
	}
	return fields, nil
}

// Name returns the ABI key of the event.
func (e *Event[T]) Name() string {
	return e.name
}

// ID returns the event signature hash, topic 0 of every matching log.
func (e *Event[T]) ID() common.Hash {
	return e.abiEvent.ID
}

// Filter retrieves past logs of the event. Each query element restricts the
// indexed field at the same position to any of the given values; an empty
// element matches everything.
func (e *Event[T]) Filter(ctx context.Context, opts FilterOptions, query ...[]any) ([]*EventLog[T], error) {
	q, err := e.filterQuery(query)
	if err != nil {
		return nil, err
	}
	q.FromBlock = new(big.Int).SetUint64(opts.Start)
	if opts.End != nil {
		q.ToBlock = new(big.Int).SetUint64(*opts.End)
	}
	logs, err := e.contract.client.backend.FilterLogs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("solbind: filter %q logs: %w", e.name, err)
	}
	out := make([]*EventLog[T], 0, len(logs))
	for _, l := range logs {
		ev, err := e.Parse(l)
		if err != nil {
			return nil, err
		}
		out = append(out, &EventLog[T]{Event: ev, Log: l})
	}
	return out, nil
}

// Watch subscribes to new logs of the event and delivers them decoded to
// sink until the subscription is unsubscribed or fails.
func (e *Event[T]) Watch(ctx context.Context, sink chan<- *EventLog[T], query ...[]any) (event.Subscription, error) {
	q, err := e.filterQuery(query)
	if err != nil {
		return nil, err
	}
	logs := make(chan types.Log)
	sub, err := e.contract.client.backend.SubscribeFilterLogs(ctx, q, logs)
	if err != nil {
		return nil, fmt.Errorf("solbind: subscribe to %q logs: %w", e.name, err)
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case l := <-logs:
				ev, err := e.Parse(l)
				if err != nil {
					return err
				}
				select {
				case sink <- &EventLog[T]{Event: ev, Log: l}:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// Parse decodes a log of the event into T.
func (e *Event[T]) Parse(l types.Log) (*T, error) {
	if e.err != nil {
		return nil, e.err
	}
	if len(l.Topics) == 0 || l.Topics[0] != e.abiEvent.ID {
		return nil, fmt.Errorf("solbind: log is not a %q event", e.name)
	}
	data, err := e.abiEvent.Inputs.NonIndexed().Unpack(l.Data)
	if err != nil {
		return nil, fmt.Errorf("solbind: unpack %q data: %w", e.name, err)
	}
	// Positional keys keep unnamed or clashing inputs apart.
	var indexed abi.Arguments
	for _, in := range e.abiEvent.Inputs {
		if in.Indexed {
			in.Name = fmt.Sprintf("topic%d", len(indexed))
			indexed = append(indexed, in)
		}
	}
	topics := make(map[string]any, len(indexed))
	if err := abi.ParseTopicsIntoMap(topics, indexed, l.Topics[1:]); err != nil {
		return nil, fmt.Errorf("solbind: parse %q topics: %w", e.name, err)
	}

	out := new(T)
	rv := reflect.ValueOf(out).Elem()
	var nData, nTopic int
	for _, f := range e.fields {
		var raw any
		if f.indexed {
			raw = topics[fmt.Sprintf("topic%d", nTopic)]
			nTopic++
		} else {
			raw = data[nData]
			nData++
		}
		dst := rv.Field(f.field)
		val, err := fromABIValue(raw, dst.Type())
		if err != nil {
			return nil, fmt.Errorf("solbind: %q field %q: %w", e.name, f.name, err)
		}
		dst.Set(val)
	}
	return out, nil
}

func (e *Event[T]) filterQuery(query [][]any) (ethereum.FilterQuery, error) {
	if e.err != nil {
		return ethereum.FilterQuery{}, e.err
	}
	var indexed abi.Arguments
	for _, in := range e.abiEvent.Inputs {
		if in.Indexed {
			indexed = append(indexed, in)
		}
	}
	if len(query) > len(indexed) {
		return ethereum.FilterQuery{}, fmt.Errorf("%w: %q has %d, got %d", ErrTooManyTopics, e.name, len(indexed), len(query))
	}
	converted := make([][]any, len(query))
	for i, rule := range query {
		for _, v := range rule {
			cv, err := topicValue(v, indexed[i].Type)
			if err != nil {
				return ethereum.FilterQuery{}, &ArgumentError{Method: e.name, Index: i, Err: err}
			}
			converted[i] = append(converted[i], cv)
		}
	}
	topics, err := abi.MakeTopics(converted...)
	if err != nil {
		return ethereum.FilterQuery{}, fmt.Errorf("solbind: build %q topics: %w", e.name, err)
	}
	return ethereum.FilterQuery{
		Addresses: []common.Address{e.contract.address},
		Topics:    append([][]common.Hash{{e.abiEvent.ID}}, topics...),
	}, nil
}

// topicValue converts a query value for an indexed input. Array inputs are
// stored as the hash of their encoding, so they are matched by that hash
// given as a common.Hash or a 32-byte slice.
func topicValue(v any, typ abi.Type) (any, error) {
	if typ.T != abi.SliceTy && typ.T != abi.ArrayTy {
		return toABIValue(v, typ)
	}
	switch h := v.(type) {
	case common.Hash:
		return h, nil
	case []byte:
		if len(h) == common.HashLength {
			return common.BytesToHash(h), nil
		}
	}
	return nil, &ConversionError{From: fmt.Sprintf("%T", v), To: typ.String() + " topic hash"}
}
