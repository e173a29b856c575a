// Package treestore persists content trees. Every backend stores the same
// opaque gob blob so a tree written by one can be read by any other.
package treestore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

// ErrNotFound is returned by Load when no tree is stored under the key.
var ErrNotFound = ports.ErrTreeNotFound

func init() {
	gob.Register(&model.Topic{})
	gob.Register(&model.Video{})
	gob.Register(&model.Exercise{})
	gob.Register(&model.Article{})
}

type envelope struct {
	Root model.Node
}

// Encode serializes a tree.
func Encode(tree model.Node) ([]byte, error) {
	if tree == nil {
		return nil, errors.New("encode tree: nil tree")
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(envelope{Root: tree}); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a tree written by Encode.
func Decode(data []byte) (model.Node, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if env.Root == nil {
		return nil, errors.New("decode tree: empty payload")
	}
	fillChildren(env.Root)
	return env.Root, nil
}

// fillChildren restores empty child lists, which gob does not transmit.
func fillChildren(n model.Node) {
	t, ok := n.(*model.Topic)
	if !ok {
		return
	}
	if t.Children == nil {
		t.Children = []model.Node{}
	}
	for _, c := range t.Children {
		fillChildren(c)
	}
}
