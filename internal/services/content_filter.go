package services

import (
	"regexp"
	"sync"
)

// BannedWords are rejected as whole words, case-insensitively.
var BannedWords = []string{
	"fuck", "fucking", "shit", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "faggot", "retard",
	"porn", "porno", "nudes",
	"scam", "phishing", "malware",
	"puta", "mierda", "pendejo", "cabron", "estafa",
}

// ContentFilter screens user-generated text before it is stored.
type ContentFilter struct {
	once                sync.Once
	bannedWordRegexps   []*regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{}
	f.compile()
	return f
}

func (f *ContentFilter) compile() {
	f.once.Do(func() {
		f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
		for _, word := range BannedWords {
			f.bannedWordRegexps = append(f.bannedWordRegexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
		}
		f.repeatedCharPattern = regexp.MustCompile(`(a{5,}|e{5,}|i{5,}|o{5,}|u{5,}|!{5,}|\?{5,}|\.{6,})`)
		f.allCapsPattern = regexp.MustCompile(`\b[A-Z]{5,}\b`)
	})
}

// Check returns ok=false and a reason code when text should be rejected.
func (f *ContentFilter) Check(text string) (ok bool, reason string) {
	if text == "" {
		return true, ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if f.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 2 {
		return false, "excessive_caps"
	}
	return true, ""
}

// RejectionMessage maps a Check reason code to a user-facing message.
func RejectionMessage(reason string) string {
	switch reason {
	case "inappropriate_language":
		return "Your post contains inappropriate language."
	case "spam_detected":
		return "Your post appears to be spam."
	case "excessive_caps":
		return "Please avoid using excessive capital letters."
	}
	return "Your post does not meet the community guidelines."
}
