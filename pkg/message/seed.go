package message

import (
	"slices"

	"github.com/matzehuels/yuletree/pkg/errors"
)

var seeds = map[string][]string{
	"en": {
		"I love you",
		"Merry Christmas and Happy New Year!",
		"May the magic of Christmas shine in your heart.",
		"Health, love, and success!",
		"Happy holidays and may all your wishes come true!",
		"A new year full of hope and dreams!",
		"Gratitude for all the beautiful moments.",
		"Believe in your dreams!",
		"The best gift is love.",
		"Smile, it's Christmas!",
		"Spread light wherever you go.",
		"Live each moment with joy and passion.",
	},
	"pt": {
		"Muita paz e alegria!",
		"Feliz Natal e próspero Ano Novo!",
		"Que a magia do Natal ilumine sua vida.",
		"Saúde, amor e sucesso!",
		"Boas festas e muitas realizações!",
		"Um ano novo cheio de esperança!",
		"Gratidão por tudo que passou.",
		"Acredite nos seus sonhos!",
		"O melhor presente é o amor.",
		"Sorria, é Natal!",
		"Espalhe luz por onde for.",
		"Viva cada momento com intensidade.",
	},
}

// DefaultSeed is the seed set used when none is configured.
const DefaultSeed = "en"

// SeedLanguages returns the available seed sets, sorted.
func SeedLanguages() []string {
	langs := make([]string, 0, len(seeds))
	for k := range seeds {
		langs = append(langs, k)
	}
	slices.Sort(langs)
	return langs
}

// Seed returns the seed messages for lang with ids starting at 1. An
// empty lang selects [DefaultSeed].
func Seed(lang string) ([]Message, error) {
	if lang == "" {
		lang = DefaultSeed
	}
	texts, ok := seeds[lang]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown seed %q (available: %v)", lang, SeedLanguages())
	}
	msgs := make([]Message, len(texts))
	for i, t := range texts {
		msgs[i] = Message{ID: i + 1, Text: t}
	}
	return msgs, nil
}
