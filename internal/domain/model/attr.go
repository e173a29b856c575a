package model

import "strconv"

// Attr returns the attribute of n named by its Khan JSON key. The boolean is
// false when the variant has no such attribute.
func Attr(n Node, name string) (string, bool) {
	info := n.Info()
	switch name {
	case "id":
		return info.ID, true
	case "kind", "content_kind":
		return string(n.Kind()), true
	case "title":
		return info.Title, true
	case "description":
		return info.Description, true
	case "slug":
		return info.Slug, true
	case "ka_url":
		return info.KAURL, true
	}

	switch v := n.(type) {
	case *Topic:
		if name == "render_type" {
			return string(v.RenderType), true
		}
	case *Video:
		switch name {
		case "youtube_id":
			return v.YouTubeID, true
		case "translated_youtube_id":
			return v.TranslatedYouTubeID, true
		case "duration":
			return strconv.Itoa(v.Duration), true
		}
	case *Exercise:
		if name == "node_slug" {
			return v.NodeSlug, true
		}
	}
	return "", false
}
