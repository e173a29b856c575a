package contenttree

import (
	"fmt"

	"kasubs/internal/domain/model"
)

// ContentItems returns every non-topic node below tree, optionally filtered by
// content type, in document order. The filter applies at every depth.
func ContentItems(tree model.Node, contentType model.ContentType) []model.Node {
	var out []model.Node
	collectItems(tree, contentType, &out)
	return out
}

func collectItems(n model.Node, contentType model.ContentType, out *[]model.Node) {
	t, ok := n.(*model.Topic)
	if !ok {
		if contentType.Matches(n.Kind()) {
			*out = append(*out, n)
		}
		return
	}
	for _, c := range t.Children {
		collectItems(c, contentType, out)
	}
}

// ContentKey identifies a node across content types. Ids are only unique
// within one kind.
type ContentKey struct {
	Kind model.Kind
	ID   string
}

// IDSet records the content already exported. The caller owns it and may
// share it between calls to deduplicate across several trees.
type IDSet map[ContentKey]struct{}

// Has reports whether the node was recorded.
func (s IDSet) Has(n model.Node) bool {
	_, ok := s[ContentKey{Kind: n.Kind(), ID: n.Info().ID}]
	return ok
}

// Add records the node.
func (s IDSet) Add(n model.Node) {
	s[ContentKey{Kind: n.Kind(), ID: n.Info().ID}] = struct{}{}
}

// Record is a flat projection of a node onto a list of attribute keys.
type Record map[string]string

// AttrError reports a requested key that a matching node does not carry.
type AttrError struct {
	ID   string
	Kind model.Kind
	Key  string
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("%s %q has no attribute %q", e.Kind, e.ID, e.Key)
}

// UniqueContentData projects every node of contentType below tree onto keys,
// skipping nodes already in seen. Returned nodes are added to seen, so
// repeated calls sharing seen never yield the same node twice.
func UniqueContentData(tree model.Node, contentType model.ContentType, keys []string, seen IDSet) ([]Record, error) {
	if seen == nil {
		return nil, fmt.Errorf("unique content data: nil id set")
	}
	var out []Record
	if err := collectUnique(tree, contentType, keys, seen, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectUnique(n model.Node, contentType model.ContentType, keys []string, seen IDSet, out *[]Record) error {
	wanted := contentType.Matches(n.Kind())
	if contentType == model.ContentAll && n.Kind() == model.KindTopic {
		wanted = false
	}

	// A matching topic that was already seen is still descended into.
	if wanted && !seen.Has(n) {
		rec := make(Record, len(keys))
		for _, k := range keys {
			v, ok := model.Attr(n, k)
			if !ok {
				return &AttrError{ID: n.Info().ID, Kind: n.Kind(), Key: k}
			}
			rec[k] = v
		}
		seen.Add(n)
		*out = append(*out, rec)
		return nil
	}

	t, ok := n.(*model.Topic)
	if !ok {
		return nil
	}
	for _, c := range t.Children {
		if err := collectUnique(c, contentType, keys, seen, out); err != nil {
			return err
		}
	}
	return nil
}
