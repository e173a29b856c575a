package contenttree

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"kasubs/internal/domain/model"
)

const (
	delim             = ";"
	youtubeTimedText  = "https://www.youtube.com/timedtext_video?v="
	translationPortal = "https://www.khanacademy.org/translations/edit/"

	// DefaultTranslationLocale is the portal locale used when none is configured.
	DefaultTranslationLocale = "cs"
)

// ReportOptions tunes the full tree report.
type ReportOptions struct {
	// TranslationLocale selects the translation portal locale of exercise links.
	TranslationLocale string
	// IncludeDescription appends the plain-text description to every row.
	IncludeDescription bool
}

// TranslationPortalLink returns the translation portal page for an exercise.
func TranslationPortalLink(locale, nodeSlug string) string {
	if locale == "" {
		locale = DefaultTranslationLocale
	}
	return translationPortal + locale + "/" + nodeSlug + "/tree/upstream"
}

// Report renders tree as semicolon separated rows, one per content item.
// Topic and tutorial titles are emitted as leading columns; a row that starts
// a new line gets two empty columns so titles stay aligned in a spreadsheet.
// Topics whose title starts with the word "Skill" are not listed.
func Report(tree model.Node, opts ReportOptions) string {
	r := &reportWriter{opts: opts}
	r.add("\n")
	r.visit(tree)
	return r.b.String()
}

// WriteReport writes Report(tree, opts) to w.
func WriteReport(w io.Writer, tree model.Node, opts ReportOptions) error {
	_, err := io.WriteString(w, Report(tree, opts))
	return err
}

type reportWriter struct {
	b    strings.Builder
	last byte
	opts ReportOptions
}

func (r *reportWriter) add(s string) {
	if s == "" {
		return
	}
	r.b.WriteString(s)
	r.last = s[len(s)-1]
}

func (r *reportWriter) atLineStart() bool { return r.last == '\n' }

func (r *reportWriter) visit(n model.Node) {
	t, ok := n.(*model.Topic)
	if !ok {
		r.row(n)
		return
	}

	// Topics holding nothing of the requested kind come back empty.
	if len(t.Children) == 0 {
		r.add("\n")
		return
	}

	for _, c := range t.Children {
		if ct, ok := c.(*model.Topic); ok && !isSkillTitle(ct.Title) {
			if ct.RenderType == model.RenderTutorial && r.atLineStart() {
				r.add(delim + ct.Title + delim)
			} else {
				r.add(ct.Title + delim)
			}
		}
		r.visit(c)
	}
}

func (r *reportWriter) row(n model.Node) {
	info := n.Info()

	var row strings.Builder
	if r.atLineStart() {
		row.WriteString(delim + delim)
	}
	row.WriteString(info.Title + delim + info.KAURL)

	switch v := n.(type) {
	case *model.Video:
		row.WriteString(delim + v.YouTubeID + delim + youtubeTimedText + v.YouTubeID + delim + strconv.Itoa(v.Duration))
	case *model.Exercise:
		row.WriteString(delim + TranslationPortalLink(r.opts.TranslationLocale, v.NodeSlug))
	}

	if r.opts.IncludeDescription {
		desc := PlainText(info.Description)
		if desc == "" {
			desc = " "
		}
		row.WriteString(delim + desc)
	}

	row.WriteString("\n")
	r.add(row.String())
}

func isSkillTitle(title string) bool {
	words := strings.Fields(title)
	return len(words) > 0 && words[0] == "Skill"
}

// WriteRecords writes records as semicolon separated rows preceded by a
// header of keys. Fields containing the separator or line breaks are quoted.
func WriteRecords(w io.Writer, keys []string, records []Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(keys); err != nil {
		return err
	}
	row := make([]string, len(keys))
	for _, rec := range records {
		for i, k := range keys {
			row[i] = rec[k]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
