package quote

import "github.com/fastygo/spideplan/domain"

// DefaultQuotes is the starter set loaded into an empty store.
func DefaultQuotes() []domain.Quote {
	return []domain.Quote{
		{
			Text:     "With great power comes great responsibility.",
			Author:   "Uncle Ben",
			Source:   "Spider-Man (2002)",
			Category: domain.QuoteResponsibility,
		},
		{
			Text:     "Sometimes we have to be steady and give up the thing we want the most. Even our dreams.",
			Author:   "Spider-Man",
			Source:   "Spider-Man (2002)",
			Category: domain.QuotePerseverance,
		},
		{
			Text:     "Not everyone is meant to make a difference. But for me, the choice to lead an ordinary life is no longer an option.",
			Author:   "Spider-Man",
			Source:   "The Amazing Spider-Man",
			Category: domain.QuoteCourage,
		},
		{
			Text:     "We all have secrets: the ones we keep... and the ones that are kept from us.",
			Author:   "Spider-Man",
			Source:   "The Amazing Spider-Man",
			Category: domain.QuoteWisdom,
		},
		{
			Text:     "The only way to live a good life is to act on your emotions.",
			Author:   "Spider-Man",
			Source:   "The Amazing Spider-Man 2",
			Category: domain.QuoteMotivation,
		},
		{
			Text:     "I believe there's a hero in all of us, that keeps us honest, gives us strength, makes us noble.",
			Author:   "Aunt May",
			Source:   "Spider-Man 2",
			Category: domain.QuoteMotivation,
		},
		{
			Text:     "No matter how buried it gets, or how lost you feel, you must promise me that you will hold on to hope.",
			Author:   "Aunt May",
			Source:   "The Amazing Spider-Man 2",
			Category: domain.QuotePerseverance,
		},
		{
			Text:     "It's the choices that make us who we are, and we can always choose to do what's right.",
			Author:   "Spider-Man",
			Source:   "Spider-Man 3",
			Category: domain.QuoteResponsibility,
		},
		{
			Text:     "Whatever comes our way, whatever battle we have raging inside us, we always have a choice.",
			Author:   "Spider-Man",
			Source:   "Spider-Man 3",
			Category: domain.QuoteCourage,
		},
		{
			Text:     "Being Spider-Man is not about the mask, it's about having the courage to do what's right.",
			Author:   "Spider-Man",
			Source:   "Spider-Man: Homecoming",
			Category: domain.QuoteCourage,
		},
		{
			Text:     "You don't become a hero because you have powers. You become a hero by using them to help others.",
			Author:   "Spider-Man",
			Source:   "Spider-Man",
			Category: domain.QuoteResponsibility,
		},
		{
			Text:     "The hardest thing about being Spider-Man is that you can't always save everyone.",
			Author:   "Spider-Man",
			Source:   "Spider-Man",
			Category: domain.QuoteWisdom,
		},
	}
}
