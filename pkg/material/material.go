// Package material implements the regex-driven slicing and rewriting of
// Ogre .material scripts. It is deliberately not a grammar parser: blocks
// are located by keyword occurrences and the outer braces are matched
// positionally (first-opening/last-closing), which is sufficient for the
// narrow class of materials the classifier accepts.
package material

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Keyword introduces a material definition in the script format.
const Keyword = "material"

var (
	splitRE = regexp.MustCompile(`material\s+`)
	nameRE  = regexp.MustCompile(`^material\s+([^\n{]+)(\s*)`)

	passOpenRE        = regexp.MustCompile(`\bpass\s*\{`)
	textureUnitOpenRE = regexp.MustCompile(`\btexture_unit\s*\{`)

	// Rename sites. The original rules used lookaheads; RE2 has none, so the
	// whitespace-plus-brace tail is captured and reinserted instead.
	techniqueOpenRE   = regexp.MustCompile(`\btechnique(\s*\{)`)
	textureUnitNameRE = regexp.MustCompile(`\btexture_unit(\s*\{)`)
	passSpanRE        = regexp.MustCompile(`pass\s*\{[^}]*\}`)
)

// Block is one self-contained material definition: the keyword, the declared
// name and the brace-enclosed body, exactly as it will appear in the output.
type Block struct {
	Text string
}

// Name returns the declared material name: the run of characters after the
// keyword up to the first newline or opening brace, trimmed of surrounding
// whitespace. Empty if the block does not start with a valid declaration.
func (b Block) Name() string {
	m := nameRE.FindStringSubmatch(b.Text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Split divides file content into material blocks. Content before the first
// keyword occurrence is discarded; each block is re-prefixed with the keyword
// so it stands alone and re-parses. A file with no occurrences yields no
// blocks.
func Split(content string) []Block {
	parts := splitRE.Split(content, -1)
	if len(parts) <= 1 {
		return nil
	}
	blocks := make([]Block, 0, len(parts)-1)
	for _, part := range parts[1:] {
		blocks = append(blocks, Block{Text: Keyword + " " + part})
	}
	return blocks
}

// Options control classification and rewriting. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// BaseMaterial is the shared namespace path rewritten materials inherit
	// from.
	BaseMaterial string
	// TechniqueSuffix, PassSuffix and TextureUnitSuffix are the names
	// appended to the matching sub-block keywords.
	TechniqueSuffix   string
	PassSuffix        string
	TextureUnitSuffix string
	// Disqualifiers are substrings whose presence anywhere in a block makes
	// it ineligible.
	Disqualifiers []string
	// MinPasses and MaxPasses bound the accepted pass sub-block count.
	MinPasses int
	MaxPasses int
}

// DefaultOptions returns the rules the updater ships with: migration onto
// the RoR managed-materials base.
func DefaultOptions() Options {
	return Options{
		BaseMaterial:      "RoR/Managed_Mats/Base",
		TechniqueSuffix:   "BaseTechnique",
		PassSuffix:        "BaseRender",
		TextureUnitSuffix: "Diffuse_Map",
		Disqualifiers:     []string{"vertex_program_ref", "fragment_program_ref", "tex_coord_set"},
		MinPasses:         1,
		MaxPasses:         2,
	}
}

// Rewriter classifies blocks and rewrites the eligible ones onto the base
// material.
type Rewriter struct {
	opts Options
}

// NewRewriter creates a Rewriter with the given rules.
func NewRewriter(opts Options) *Rewriter {
	return &Rewriter{opts: opts}
}

// Eligible reports whether a block qualifies for the base-material rewrite:
// no disqualifying substring anywhere in its text, a pass sub-block count
// within bounds, and exactly one texture_unit sub-block. The substring scan
// is not brace-scope aware; a disqualifier inside a comment still counts.
func (r *Rewriter) Eligible(b Block) bool {
	for _, kw := range r.opts.Disqualifiers {
		if strings.Contains(b.Text, kw) {
			return false
		}
	}

	passes := len(passOpenRE.FindAllString(b.Text, -1))
	if passes < r.opts.MinPasses || passes > r.opts.MaxPasses {
		return false
	}

	return len(textureUnitOpenRE.FindAllString(b.Text, -1)) == 1
}

// Transform rewrites an eligible block so it derives from the base material:
// the declared name becomes an inheritance reference, technique and
// texture_unit openers gain their suffix names, and the pass containing the
// texture_unit gains the render suffix. Whitespace between the name and the
// opening brace is preserved verbatim. Pure text transform; the receiver and
// the input block are not modified.
func (r *Rewriter) Transform(b Block) (Block, error) {
	m := nameRE.FindStringSubmatch(b.Text)
	if m == nil {
		return Block{}, errors.Errorf("extracting material name from %q", head(b.Text))
	}
	name := strings.TrimSpace(m[1])

	start := strings.Index(b.Text, "{")
	end := strings.LastIndex(b.Text, "}")
	if start == -1 || end == -1 || end < start {
		return Block{}, errors.Errorf("material %s: missing body braces", name)
	}

	preBraceWS := b.Text[len(Keyword+" "+name):start]
	inner := b.Text[start+1 : end]

	inner = techniqueOpenRE.ReplaceAllString(inner, "technique "+r.opts.TechniqueSuffix+"${1}")

	// Pass spans are shallow: non-greedy up to the first closing brace, so a
	// span typically ends at the texture_unit's closing brace. Only the pass
	// that carries the texture_unit is renamed.
	inner = passSpanRE.ReplaceAllStringFunc(inner, func(span string) string {
		if strings.Contains(span, "texture_unit") {
			return strings.Replace(span, "pass", "pass "+r.opts.PassSuffix, 1)
		}
		return span
	})

	inner = textureUnitNameRE.ReplaceAllString(inner, "texture_unit "+r.opts.TextureUnitSuffix+"${1}")

	text := Keyword + " " + name + ": " + r.opts.BaseMaterial + preBraceWS + "{" + inner + "}"
	return Block{Text: text}, nil
}

// head truncates block text for error messages.
func head(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
