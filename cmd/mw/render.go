package main

import (
	"strings"

	"github.com/petbrain/myaw/mw"
	"github.com/petbrain/myaw/pkg/value"
	"github.com/russross/blackfriday"
)

// markdownExtensions mirrors the extension set cmd/poc/main.go enables for
// its Stream-Of-Consciousness notes, reused here verbatim since ":markdown:"
// blocks are ordinary prose with the same needs: fenced code, autolinks,
// strikethrough and heading IDs.
const markdownExtensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak

// registerMarkdown adds a ":markdown:" conversion specifier to p: its block
// lines are read with ReadBlock (only the block's indentation is removed,
// they are not dedented further), joined with line feeds, then rendered to
// an HTML string through blackfriday. This is not part of the core MW
// grammar; it exists to show an embedder exercising SetCustomParser the way myaw.h's
// mw_set_custom_parser was meant to be used, grounded on cmd/poc/main.go's
// blackfriday.New(blackfriday.WithExtensions(...)) setup.
func registerMarkdown(p *mw.Parser) {
	p.SetCustomParser("markdown", func(p *mw.Parser) (value.Value, error) {
		block, err := p.ReadBlock()
		if err != nil {
			return value.Null(), err
		}
		source := strings.Join(block, "\n")
		html := blackfriday.Run([]byte(source), blackfriday.WithExtensions(markdownExtensions))
		return value.NewString(string(html)), nil
	})
}
