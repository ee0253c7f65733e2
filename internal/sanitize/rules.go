package sanitize

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rules is the immutable configuration of the text classifiers. DefaultRules
// covers the listing markup; LoadRules overlays a YAML file on top of it.
type Rules struct {
	// NoisePhrases are interface labels matched case-insensitively against
	// the whole text.
	NoisePhrases []string `yaml:"noise_phrases"`
	// NoisePatterns are regular expressions matched against the whole text.
	NoisePatterns []string `yaml:"noise_patterns"`
	// CodePrefixes mark text that starts like script source.
	CodePrefixes []string `yaml:"code_prefixes"`
	// SpecialChars is the set counted by the density check.
	SpecialChars string `yaml:"special_chars"`
	// SpecialCharRatio is the density above which text is treated as code.
	SpecialCharRatio float64 `yaml:"special_char_ratio"`
	// SpecialCharMinLength is the shortest text the density check applies to.
	SpecialCharMinLength int `yaml:"special_char_min_length"`
	// MinReviewLength is the shortest accepted review text, in runes.
	MinReviewLength int `yaml:"min_review_length"`
	// FragmentLength is the length under which unterminated text is treated
	// as a name or label rather than a review body.
	FragmentLength int `yaml:"fragment_length"`
	// FallbackMinLength is the shortest text run the last-resort text
	// pattern will pick up from a review block.
	FallbackMinLength int `yaml:"fallback_min_length"`
}

// DefaultRules returns the built-in classifier configuration.
func DefaultRules() Rules {
	return Rules{
		NoisePhrases: []string{
			"Подписаться",
			"Отписаться",
			"Ответить",
			"Поделиться",
			"Пожаловаться",
			"Читать целиком",
			"Читать полностью",
			"Ещё",
			"Свернуть",
			"Развернуть",
			"Полезно",
			"Нравится",
			"Не нравится",
			"Ответ организации",
			"Посмотреть ответ организации",
			"Знатоки города",
			"Показать ещё",
			"Все отзывы",
			"Написать отзыв",
			"Subscribe",
			"Reply",
			"Share",
			"Read more",
			"Show more",
		},
		NoisePatterns: []string{
			`^.{0,80}•\s*\d{1,3}\s*%$`,
			`^\d{1,3}\s*%$`,
			`^Знаток города\s+\d+\s+уровня$`,
			`^(?i)level\s+\d+\s+local expert$`,
			`^[\p{N}\p{P}\p{S}\s]+$`,
		},
		CodePrefixes: []string{
			"function",
			"(function",
			"var ",
			"let ",
			"const ",
			"return ",
			"window.",
			"document.",
			"import ",
			"export ",
			"=>",
			"<!--",
			"@media",
		},
		SpecialChars:         "{}[]()<>;=$\\|`^~*#@_",
		SpecialCharRatio:     0.15,
		SpecialCharMinLength: 50,
		MinReviewLength:      10,
		FragmentLength:       15,
		FallbackMinLength:    40,
	}
}

// LoadRules reads a YAML rules file. Keys missing from the file keep their
// DefaultRules values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, eris.Wrapf(err, "sanitize: read rules %s", path)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, eris.Wrap(err, "sanitize: parse rules")
	}
	return rules, nil
}
