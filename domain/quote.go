package domain

import (
	"fmt"
	"strings"
)

type QuoteCategory string

const (
	QuoteMotivation     QuoteCategory = "MOTIVATION"
	QuoteResponsibility QuoteCategory = "RESPONSIBILITY"
	QuotePerseverance   QuoteCategory = "PERSEVERANCE"
	QuoteCourage        QuoteCategory = "COURAGE"
	QuoteWisdom         QuoteCategory = "WISDOM"
)

var quoteCategoryNames = map[QuoteCategory]string{
	QuoteMotivation:     "Motivation",
	QuoteResponsibility: "Responsibility",
	QuotePerseverance:   "Perseverance",
	QuoteCourage:        "Courage",
	QuoteWisdom:         "Wisdom",
}

func (c QuoteCategory) Valid() bool {
	_, ok := quoteCategoryNames[c]
	return ok
}

func (c QuoteCategory) DisplayName() string { return quoteCategoryNames[c] }

func ParseQuoteCategory(value string) (QuoteCategory, error) {
	c := QuoteCategory(strings.ToUpper(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", NewError(ErrCodeInvalid, fmt.Sprintf("invalid quote category %q", value))
	}
	return c, nil
}

// Quote is a motivational line shown on the home screen.
type Quote struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Author   string        `json:"author"`
	Source   string        `json:"source,omitempty"`
	Category QuoteCategory `json:"category"`
	Favorite bool          `json:"favorite"`
}
