package genre

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// aliases maps subject slugs to canonical tag names. A subject may map to several tags.
var aliases = map[string][]string{
	"fiction":                   {"Fiction"},
	"literature-fiction":        {"Fiction"},
	"literary":                  {"Fiction"},
	"literary-fiction":          {"Fiction"},
	"classics":                  {"Classic"},
	"classic":                   {"Classic"},
	"classic-literature":        {"Classic"},
	"contemporary":              {"Contemporary"},
	"contemporary-fiction":      {"Contemporary"},
	"contemporary-romance":      {"Contemporary", "Romance"},
	"romance":                   {"Romance"},
	"love-stories":              {"Romance"},
	"historical-romance":        {"Historical Fiction", "Romance"},
	"fantasy":                   {"Fantasy"},
	"epic-fantasy":              {"Fantasy"},
	"high-fantasy":              {"Fantasy"},
	"romantic-fantasy":          {"Fantasy", "Romance"},
	"romantasy":                 {"Fantasy", "Romance"},
	"fantasy-romance":           {"Fantasy", "Romance"},
	"science-fiction":           {"Science Fiction"},
	"sci-fi":                    {"Science Fiction"},
	"scifi":                     {"Science Fiction"},
	"sf":                        {"Science Fiction"},
	"science-fiction-fantasy":   {"Science Fiction", "Fantasy"},
	"mystery":                   {"Mystery"},
	"mystery-detective":         {"Mystery"},
	"detective":                 {"Mystery"},
	"thriller":                  {"Thriller"},
	"thrillers":                 {"Thriller"},
	"suspense":                  {"Thriller"},
	"mystery-thriller-suspense": {"Mystery", "Thriller"},
	"horror":                    {"Horror"},
	"historical":                {"Historical Fiction"},
	"historical-fiction":        {"Historical Fiction"},
	"young-adult":               {"Young Adult"},
	"young-adult-fiction":       {"Young Adult"},
	"ya":                        {"Young Adult"},
	"teen":                      {"Young Adult"},
	"poetry":                    {"Poetry"},
	"biography":                 {"Biography"},
	"biography-autobiography":   {"Biography"},
	"memoir":                    {"Biography"},
	"self-help":                 {"Self-Help"},
	"selfhelp":                  {"Self-Help"},
	"personal-development":      {"Self-Help"},
	"nonfiction":                {"Nonfiction"},
	"non-fiction":               {"Nonfiction"},
	"humor":                     {"Humor"},
	"humour":                    {"Humor"},
}

// ignored subject parts carry no meaning on their own ("FICTION / General").
var ignored = map[string]bool{
	"general": true,
	"other":   true,
	"ebook":   true,
	"ebooks":  true,
}

var titleCaser = cases.Title(language.English)

// Tags maps raw subjects to canonical tags, deduplicated, in first-seen order.
// Subjects may be hierarchical ("FICTION / Romance / Historical") or lists ("Fantasy; Romance").
// Unknown subjects are kept in title case.
func Tags(subjects []string) []string {
	var out []string
	add := func(tag string) {
		for _, existing := range out {
			if SameTag(existing, tag) {
				return
			}
		}
		out = append(out, tag)
	}

	for _, subject := range subjects {
		// Try the whole subject first so compound aliases win over their parts.
		if tags, ok := aliases[Slugify(subject)]; ok {
			for _, t := range tags {
				add(t)
			}
			continue
		}

		for _, part := range strings.FieldsFunc(subject, isSubjectSeparator) {
			part = strings.TrimSpace(part)
			slug := Slugify(part)
			if slug == "" || ignored[slug] {
				continue
			}
			if tags, ok := aliases[slug]; ok {
				for _, t := range tags {
					add(t)
				}
				continue
			}
			add(titleCaser.String(part))
		}
	}
	return out
}

func isSubjectSeparator(r rune) bool {
	return r == '/' || r == ';' || r == ',' || r == '>'
}
