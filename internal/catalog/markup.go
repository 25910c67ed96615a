package catalog

import "strings"

// BlockKind is the role of one line of a window body.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockHeading
	BlockSubheading
	BlockBullet
	BlockBlank
)

// Block is one line of a window body.
type Block struct {
	Kind BlockKind
	Text string
}

// ParseBody splits a body into blocks. "# " starts a heading, "## " a
// subheading and "- " a bullet; anything else is text.
func ParseBody(body string) []Block {
	body = strings.Trim(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if body == "" {
		return nil
	}

	lines := strings.Split(body, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, Block{Kind: BlockBlank})
		case strings.HasPrefix(trimmed, "## "):
			blocks = append(blocks, Block{Kind: BlockSubheading, Text: strings.TrimSpace(trimmed[3:])})
		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, Block{Kind: BlockHeading, Text: strings.TrimSpace(trimmed[2:])})
		case strings.HasPrefix(trimmed, "- "):
			blocks = append(blocks, Block{Kind: BlockBullet, Text: strings.TrimSpace(trimmed[2:])})
		default:
			blocks = append(blocks, Block{Kind: BlockText, Text: strings.TrimRight(line, " \t")})
		}
	}
	return blocks
}
