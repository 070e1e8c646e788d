// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/jsonview/value.go
// Summary: Ordered JSON value tree built with jsonparser.
// Notes: Object members keep their document order; duplicate keys are kept.

package jsonview

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// Kind is the JSON type of a node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrInvalid is returned for input that is not a JSON value.
var ErrInvalid = errors.New("jsonview: invalid JSON")

// Node is one value in the tree. Key is set for object members.
type Node struct {
	Kind     Kind
	Key      string
	Raw      string
	Children []*Node
}

// IsContainer reports whether n is an object or array.
func (n *Node) IsContainer() bool { return n.Kind == Object || n.Kind == Array }

// Summary is the one-line rendering of the value itself.
func (n *Node) Summary() string {
	switch n.Kind {
	case String:
		return strconv.Quote(n.Raw)
	case Object:
		return fmt.Sprintf("{…} %d", len(n.Children))
	case Array:
		return fmt.Sprintf("[…] %d", len(n.Children))
	}
	return n.Raw
}

// Parse builds a tree from a JSON document.
func Parse(data []byte) (*Node, error) {
	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return build(value, typ)
}

// MustParse is Parse for literals in tests and defaults.
func MustParse(s string) *Node {
	n, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return n
}

func build(value []byte, typ jsonparser.ValueType) (*Node, error) {
	switch typ {
	case jsonparser.Null:
		return &Node{Kind: Null, Raw: "null"}, nil
	case jsonparser.Boolean:
		return &Node{Kind: Bool, Raw: string(value)}, nil
	case jsonparser.Number:
		return &Node{Kind: Number, Raw: string(value)}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return &Node{Kind: String, Raw: s}, nil
	case jsonparser.Object:
		n := &Node{Kind: Object}
		err := jsonparser.ObjectEach(value, func(key, v []byte, t jsonparser.ValueType, _ int) error {
			child, err := build(v, t)
			if err != nil {
				return err
			}
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return fmt.Errorf("%w: key %q: %v", ErrInvalid, key, err)
			}
			child.Key = k
			n.Children = append(n.Children, child)
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrInvalid) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return n, nil
	case jsonparser.Array:
		n := &Node{Kind: Array}
		var firstErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, err error) {
			if firstErr != nil {
				return
			}
			if err != nil {
				firstErr = err
				return
			}
			child, err := build(v, t)
			if err != nil {
				firstErr = err
				return
			}
			n.Children = append(n.Children, child)
		})
		if firstErr == nil {
			firstErr = err
		}
		if firstErr != nil {
			if errors.Is(firstErr, ErrInvalid) {
				return nil, firstErr
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalid, firstErr)
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: unexpected value type %v", ErrInvalid, typ)
}
