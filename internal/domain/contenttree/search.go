// Package contenttree walks Khan Academy content trees. Every function only
// reads the tree it is given and keeps no reference to it after returning.
package contenttree

import "kasubs/internal/domain/model"

// Topics returns the topics whose render type equals renderType, or every
// topic for model.RenderAll, in pre-order. The root is included when it matches.
func Topics(tree model.Node, renderType model.RenderType) []*model.Topic {
	var out []*model.Topic
	collectTopics(tree, renderType, &out)
	return out
}

func collectTopics(n model.Node, renderType model.RenderType, out *[]*model.Topic) {
	t, ok := n.(*model.Topic)
	if !ok {
		return
	}
	if renderType == model.RenderAll || t.RenderType == renderType {
		*out = append(*out, t)
	}
	for _, c := range t.Children {
		collectTopics(c, renderType, out)
	}
}

// Lessons returns the Tutorial topics.
func Lessons(tree model.Node) []*model.Topic { return Topics(tree, model.RenderTutorial) }

// Units returns the Topic-level topics.
func Units(tree model.Node) []*model.Topic { return Topics(tree, model.RenderTopic) }

// Domains returns the Domain topics.
func Domains(tree model.Node) []*model.Topic { return Topics(tree, model.RenderDomain) }

// Courses returns the Subject topics.
func Courses(tree model.Node) []*model.Topic { return Topics(tree, model.RenderSubject) }

// findChild visits the descendants of n. Each child is tested before the
// search descends into it, and a child's subtree is exhausted before its
// next sibling is tested. The root itself is never tested.
func findChild(n model.Node, match func(model.Node) bool) model.Node {
	for _, c := range model.Children(n) {
		if match(c) {
			return c
		}
		if found := findChild(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindVideo returns the first video below tree whose attribute attrName
// equals value, or nil.
func FindVideo(tree model.Node, attrName, value string) *model.Video {
	found := findChild(tree, func(n model.Node) bool {
		if n.Kind() != model.KindVideo {
			return false
		}
		got, ok := model.Attr(n, attrName)
		return ok && got == value
	})
	if found == nil {
		return nil
	}
	return found.(*model.Video)
}

// FindTopic returns the first node below tree whose title or slug equals
// title, or nil. Leaves match as well as topics.
func FindTopic(tree model.Node, title string) model.Node {
	return findChild(tree, func(n model.Node) bool {
		info := n.Info()
		return info.Title == title || info.Slug == title
	})
}

// FindVideoByYouTubeID returns the first video below tree with the given
// YouTube id, or nil.
func FindVideoByYouTubeID(tree model.Node, youtubeID string) *model.Video {
	found := findChild(tree, func(n model.Node) bool {
		v, ok := n.(*model.Video)
		return ok && v.YouTubeID == youtubeID
	})
	if found == nil {
		return nil
	}
	return found.(*model.Video)
}
