package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// KindError reports a node whose kind is missing or not one of the four variants.
type KindError struct {
	Kind  string
	Title string
}

func (e *KindError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("content node %q has no kind", e.Title)
	}
	return fmt.Sprintf("content node %q has unsupported kind %q", e.Title, e.Kind)
}

// rawNode mirrors the topic tree JSON. Optional fields are pointers so a
// null description stays distinguishable from an empty one while decoding.
type rawNode struct {
	Kind                string            `json:"kind,omitempty"`
	ContentKind         string            `json:"content_kind,omitempty"`
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Description         *string           `json:"description"`
	Slug                string            `json:"slug,omitempty"`
	KAURL               string            `json:"ka_url,omitempty"`
	RenderType          string            `json:"render_type,omitempty"`
	Children            []json.RawMessage `json:"children,omitempty"`
	YouTubeID           string            `json:"youtube_id,omitempty"`
	TranslatedYouTubeID string            `json:"translated_youtube_id,omitempty"`
	Duration            *int              `json:"duration,omitempty"`
	NodeSlug            string            `json:"node_slug,omitempty"`
}

// DecodeNode decodes a Khan Academy content node, recursing into children.
// The variant is chosen by "kind", falling back to "content_kind".
func DecodeNode(data []byte) (Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode content node: %w", err)
	}

	kind := raw.Kind
	if kind == "" {
		kind = raw.ContentKind
	}

	base := Content{
		ID:    raw.ID,
		Title: raw.Title,
		Slug:  raw.Slug,
		KAURL: raw.KAURL,
	}
	if raw.Description != nil {
		base.Description = *raw.Description
	}

	switch Kind(kind) {
	case KindTopic:
		children := make([]Node, 0, len(raw.Children))
		for _, c := range raw.Children {
			child, err := DecodeNode(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &Topic{Content: base, RenderType: RenderType(raw.RenderType), Children: children}, nil
	case KindVideo:
		v := &Video{Content: base, YouTubeID: raw.YouTubeID, TranslatedYouTubeID: raw.TranslatedYouTubeID}
		if raw.Duration != nil {
			v.Duration = *raw.Duration
		}
		return v, nil
	case KindExercise:
		return &Exercise{Content: base, NodeSlug: raw.NodeSlug}, nil
	case KindArticle:
		return &Article{Content: base}, nil
	default:
		return nil, &KindError{Kind: kind, Title: raw.Title}
	}
}

// EncodeNode renders n back into the topic tree JSON shape.
func EncodeNode(n Node) ([]byte, error) {
	raw, err := toRaw(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func toRaw(n Node) (rawNode, error) {
	if n == nil {
		return rawNode{}, errors.New("encode node: nil node")
	}
	info := n.Info()
	desc := info.Description
	raw := rawNode{
		Kind:        string(n.Kind()),
		ContentKind: string(n.Kind()),
		ID:          info.ID,
		Title:       info.Title,
		Description: &desc,
		Slug:        info.Slug,
		KAURL:       info.KAURL,
	}

	switch v := n.(type) {
	case *Topic:
		raw.RenderType = string(v.RenderType)
		raw.Children = make([]json.RawMessage, 0, len(v.Children))
		for i, c := range v.Children {
			child, err := toRaw(c)
			if err != nil {
				return rawNode{}, fmt.Errorf("topic %s child %d: %w", info.ID, i, err)
			}
			data, err := json.Marshal(child)
			if err != nil {
				return rawNode{}, fmt.Errorf("topic %s child %d: %w", info.ID, i, err)
			}
			raw.Children = append(raw.Children, data)
		}
	case *Video:
		raw.YouTubeID = v.YouTubeID
		raw.TranslatedYouTubeID = v.TranslatedYouTubeID
		d := v.Duration
		raw.Duration = &d
	case *Exercise:
		raw.NodeSlug = v.NodeSlug
	}
	return raw, nil
}
