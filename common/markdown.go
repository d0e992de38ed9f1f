package common

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampStyle is a Discord timestamp rendering flag.
type TimestampStyle string

const (
	TimestampShortTime     TimestampStyle = "t"
	TimestampLongTime      TimestampStyle = "T"
	TimestampShortDate     TimestampStyle = "d"
	TimestampLongDate      TimestampStyle = "D"
	TimestampShortDateTime TimestampStyle = "f"
	TimestampLongDateTime  TimestampStyle = "F"
	TimestampRelative      TimestampStyle = "R"
)

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`,
		`*`, `\*`,
		`_`, `\_`,
		`~`, `\~`,
		"`", "\\`",
		`|`, `\|`,
		`>`, `\>`,
		`#`, `\#`,
	)
	// zero-width space keeps the text readable but stops the mass ping
	massMentionBreaker = strings.NewReplacer(
		"@everyone", "@\u200beveryone",
		"@here", "@\u200bhere",
	)
)

// SanitizeMarkdown escapes Discord markdown metacharacters and defuses mass mentions
// so user-supplied text renders literally wherever the bot displays it.
func SanitizeMarkdown(s string) string {
	return massMentionBreaker.Replace(markdownEscaper.Replace(s))
}

// TruncateRunes shortens s to at most maxRunes runes. Never splits a multi-byte rune.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes])
}

// TruncateEscaped truncates text produced by SanitizeMarkdown without leaving
// a dangling escape backslash at the cut.
func TruncateEscaped(s string, maxRunes int) string {
	out := TruncateRunes(s, maxRunes)
	if len(out) == len(s) {
		return out
	}
	trailing := len(out) - len(strings.TrimRight(out, `\`))
	if trailing%2 == 1 {
		out = out[:len(out)-1]
	}
	return out
}

func UserMention(id fmt.Stringer) string {
	return "<@" + id.String() + ">"
}

func Bold(s string) string {
	return "**" + s + "**"
}

// Timestamp renders t as a Discord timestamp tag that each client localizes.
func Timestamp(t time.Time, style TimestampStyle) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}
