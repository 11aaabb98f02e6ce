// Package vuesfc lexically splits a Vue Single File Component into its
// script and template blocks. It performs no HTML/DOM parsing: the spec
// only requires the script block's text (handed to the JS/TS procedure)
// and a lexical scan of the template for custom-element usage.
package vuesfc

import "regexp"

var scriptBlockRe = regexp.MustCompile(`(?s)<script([^>]*)>(.*?)</script>`)
var templateBlockRe = regexp.MustCompile(`(?s)<template[^>]*>(.*?)</template>`)
var setupAttrRe = regexp.MustCompile(`\bsetup\b`)
var langAttrRe = regexp.MustCompile(`\blang\s*=\s*["']([a-zA-Z]+)["']`)
var customTagRe = regexp.MustCompile(`</?([A-Z][A-Za-z0-9_.]*)\b`)

// Script is the extracted <script> or <script setup> block of a .vue file.
type Script struct {
	Source   string
	IsSetup  bool
	Lang     string // "" (plain JS), "ts", etc.
}

// SFC is the lexically split content of one .vue file.
type SFC struct {
	Script         *Script // nil if the file has no script block
	TemplateTags   []string // unique uppercase-led tag names found in <template>, in first-seen order
}

// Parse splits raw .vue source into its script and template blocks. A
// missing script or template block simply yields a nil/empty field; this
// is not an error, since a .vue file may legitimately omit either.
func Parse(source string) *SFC {
	sfc := &SFC{}

	if m := scriptBlockRe.FindStringSubmatch(source); m != nil {
		attrs, body := m[1], m[2]
		sfc.Script = &Script{
			Source:  body,
			IsSetup: setupAttrRe.MatchString(attrs),
		}
		if lm := langAttrRe.FindStringSubmatch(attrs); lm != nil {
			sfc.Script.Lang = lm[1]
		}
	}

	if m := templateBlockRe.FindStringSubmatch(source); m != nil {
		sfc.TemplateTags = extractCustomTags(m[1])
	}

	return sfc
}

// extractCustomTags returns every uppercase-led tag name referenced in a
// template body, deduplicated, in first-seen order.
func extractCustomTags(template string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, m := range customTagRe.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}
