package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter(t *testing.T) {
	f := NewContentFilter()

	cases := []struct {
		text   string
		ok     bool
		reason string
	}{
		{"The lab report is due on Friday.", true, ""},
		{"", true, ""},
		{"this is bullshit", false, "inappropriate_language"},
		{"Qué MIERDA de examen", false, "inappropriate_language"},
		{"assessment results are out", true, ""},
		{"Hellooooooo everyone!!!!!", false, "spam_detected"},
		{"URGENT NOTICE: EVERYONE MUST ATTEND", false, "excessive_caps"},
		{"NASA and UNESCO visit", true, ""},
	}
	for _, tc := range cases {
		ok, reason := f.Check(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.reason, reason, tc.text)
	}

	assert.Equal(t, "Your post appears to be spam.", RejectionMessage("spam_detected"))
	assert.Contains(t, RejectionMessage("unknown"), "community guidelines")
}
