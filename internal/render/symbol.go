package render

import (
	"html/template"
	"unicode/utf8"
)

// DefaultGlyph stands in for a missing or broken candidate symbol.
const DefaultGlyph = "📋"

const (
	emojiRangeLow  = 0x1F300
	emojiRangeHigh = 0x1F9FF
	maxEmojiRunes  = 4
)

// IsEmoji reports whether an image_url holds an emoji literal rather than
// an image reference.
func IsEmoji(imageURL string) bool {
	if imageURL == "" {
		return false
	}
	if utf8.RuneCountInString(imageURL) <= maxEmojiRunes {
		return true
	}
	for _, r := range imageURL {
		if r >= emojiRangeLow && r <= emojiRangeHigh {
			return true
		}
	}
	return false
}

type symbolView struct {
	Emoji string
	Image string
	Class string
}

// Symbol renders the ballot symbol cell for a candidate.
func Symbol(imageURL string) template.HTML {
	return symbolWithClass(imageURL, "symbol")
}

func symbolWithClass(imageURL, class string) template.HTML {
	v := symbolView{Class: class}
	switch {
	case imageURL == "":
		v.Emoji = DefaultGlyph
	case IsEmoji(imageURL):
		v.Emoji = imageURL
	default:
		v.Image = imageURL
	}
	return template.HTML(execute("symbol", v))
}
