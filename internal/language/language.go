// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package language picks the typesetting locale for a manuscript. The
// locale drives two things: the babel language loaded by the document
// template and the curly-quote glyphs substituted for straight quotes.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/pdiddy/bookpress/pkg/types"
)

// Locale bundles the typesetting settings derived from a language tag.
type Locale struct {
	// Tag is the normalized two-letter tag ("en", "sv", ...).
	Tag string

	// Babel is the babel package language name for the template.
	Babel string

	// Quotes is the curly-quote glyph set for this locale.
	Quotes types.QuoteSet
}

// locales maps normalized tags to their typesetting settings.
var locales = map[string]Locale{
	"en": {
		Tag:   "en",
		Babel: "english",
		Quotes: types.QuoteSet{
			OpenDouble: "“", CloseDouble: "”",
			OpenSingle: "‘", CloseSingle: "’",
		},
	},
	"sv": {
		Tag:   "sv",
		Babel: "swedish",
		// Swedish sets the right double quote on both sides.
		Quotes: types.QuoteSet{
			OpenDouble: "”", CloseDouble: "”",
			OpenSingle: "’", CloseSingle: "’",
		},
	},
	"de": {
		Tag:   "de",
		Babel: "german",
		Quotes: types.QuoteSet{
			OpenDouble: "„", CloseDouble: "“",
			OpenSingle: "‚", CloseSingle: "‘",
		},
	},
	"fr": {
		Tag:   "fr",
		Babel: "french",
		Quotes: types.QuoteSet{
			OpenDouble: "« ", CloseDouble: " »",
			OpenSingle: "‘", CloseSingle: "’",
		},
	},
}

// iso3Tags maps the ISO 639-3 codes the detector reports to our tags.
var iso3Tags = map[string]string{
	"eng": "en",
	"swe": "sv",
	"deu": "de",
	"fra": "fr",
}

// fallbackTag is used when a tag is unrecognized or detection is
// inconclusive.
const fallbackTag = "en"

// ForTag resolves an explicit language tag to a Locale. It accepts
// two-letter tags, ISO 639-3 codes, and region-qualified tags
// ("sv-SE"); anything unrecognized resolves to the English fallback.
func ForTag(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	if t, ok := iso3Tags[tag]; ok {
		tag = t
	}
	if l, ok := locales[tag]; ok {
		return l
	}
	return locales[fallbackTag]
}

// Detect inspects a text sample and returns the matching Locale. An
// empty sample or a language outside the supported set falls back to
// English.
func Detect(sample string) Locale {
	if strings.TrimSpace(sample) == "" {
		return locales[fallbackTag]
	}
	info := whatlanggo.Detect(sample)
	return ForTag(whatlanggo.LangToString(info.Lang))
}
