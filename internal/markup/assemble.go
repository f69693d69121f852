// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strings"

	"github.com/pdiddy/bookpress/pkg/types"
)

// sceneBreakMarker is a paragraph consisting of a single asterisk; it
// becomes a vertical gap instead of a text paragraph.
const sceneBreakMarker = "*"

// blockState tracks the open block while assembling one file.
type blockState int

const (
	stateNone blockState = iota
	stateParagraph
	stateQuote
	stateVerse
)

// assembler accumulates blocks for a single SourceDocument. The state
// is local to one Assemble call; nothing is shared across files.
type assembler struct {
	state  blockState
	segs   []string
	blocks []types.Block
}

// Assemble translates one SourceDocument into a Chapter: the first line
// becomes the heading, the remaining lines are classified, transformed
// and grouped into blocks.
//
// Paragraph lines join fluidly, quote and verse lines keep their source
// line structure. A blank line closes a paragraph or quote block; inside
// a verse block it is kept as a stanza break, so a verse block only ends
// at a non-verse, non-blank line or at end of file. A file holding just
// a title yields a chapter with no body blocks.
func Assemble(doc types.SourceDocument, quotes types.QuoteSet) types.Chapter {
	var ch types.Chapter
	var a assembler

	for i, line := range doc.Lines {
		kind, content := Classify(line, i)
		switch kind {
		case LineTitle:
			ch.Heading = Transform(content, quotes)
		case LineBlank:
			a.blank()
		case LineVerse:
			a.verse(Transform(content, quotes))
		case LineQuote:
			a.quote(Transform(content, quotes))
		case LineParagraph:
			if strings.TrimSpace(content) == sceneBreakMarker {
				a.sceneBreak()
			} else {
				a.paragraph(Transform(content, quotes))
			}
		}
	}
	a.close()

	ch.Blocks = a.blocks
	return ch
}

func (a *assembler) blank() {
	if a.state == stateVerse {
		// Stanza break: the verse block absorbs the blank line.
		a.segs = append(a.segs, "")
		return
	}
	a.close()
}

func (a *assembler) paragraph(text string) {
	if a.state != stateParagraph {
		a.close()
		a.state = stateParagraph
	}
	a.segs = append(a.segs, text)
}

func (a *assembler) quote(text string) {
	if a.state != stateQuote {
		a.close()
		a.state = stateQuote
	}
	a.segs = append(a.segs, text)
}

func (a *assembler) verse(text string) {
	if a.state != stateVerse {
		a.close()
		a.state = stateVerse
	}
	a.segs = append(a.segs, text)
}

func (a *assembler) sceneBreak() {
	a.close()
	a.blocks = append(a.blocks, types.Block{Kind: types.BlockSceneBreak})
}

// close emits the open block, if any, and resets the state.
func (a *assembler) close() {
	if a.state == stateNone {
		a.segs = nil
		return
	}

	segs := a.segs
	if a.state == stateVerse {
		// Blank lines buffered right before the block ended are not
		// stanza breaks, just the gap to the next block.
		for len(segs) > 0 && segs[len(segs)-1] == "" {
			segs = segs[:len(segs)-1]
		}
	}

	if len(segs) > 0 {
		var kind types.BlockKind
		switch a.state {
		case stateParagraph:
			kind = types.BlockParagraph
		case stateQuote:
			kind = types.BlockQuote
		case stateVerse:
			kind = types.BlockVerse
		}
		a.blocks = append(a.blocks, types.Block{Kind: kind, Segments: segs})
	}

	a.state = stateNone
	a.segs = nil
}
