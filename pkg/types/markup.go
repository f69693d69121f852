package types

// BlockKind identifies the semantic unit a block renders to.
type BlockKind string

const (
	// BlockParagraph is fluid prose; its segments join with a single space.
	BlockParagraph BlockKind = "paragraph"

	// BlockQuote is quoted material; its segments keep the source line
	// structure through forced breaks.
	BlockQuote BlockKind = "quote"

	// BlockVerse is poetry; every segment is one verse line and an empty
	// segment marks a stanza break.
	BlockVerse BlockKind = "verse"

	// BlockSceneBreak is a vertical gap between scenes, written in the
	// manuscript as a paragraph holding a single asterisk.
	BlockSceneBreak BlockKind = "scene-break"
)

// Block is a maximal run of consecutive manuscript lines of one kind,
// collapsed into a single semantic unit. Segments hold the transformed
// text in source order.
type Block struct {
	Kind     BlockKind `json:"kind" yaml:"kind"`
	Segments []string  `json:"segments" yaml:"segments"`
}

// Chapter is the translated form of one SourceDocument: its heading
// plus the body blocks in source order.
type Chapter struct {
	// Heading is the transformed chapter title (may be empty).
	Heading string `json:"heading" yaml:"heading"`

	// Blocks holds the chapter body; a title-only file has none.
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// QuoteSet is the locale-specific punctuation substituted for straight
// quotation marks.
type QuoteSet struct {
	OpenDouble  string `json:"open_double" yaml:"open_double"`
	CloseDouble string `json:"close_double" yaml:"close_double"`
	OpenSingle  string `json:"open_single" yaml:"open_single"`
	CloseSingle string `json:"close_single" yaml:"close_single"`
}
