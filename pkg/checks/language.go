package checks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/sitegen/models"
	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"
)

// MinLanguageText is the shortest main text the language check trusts.
const MinLanguageText = 80

// LanguageDetector identifies the language of page text among a fixed set of
// candidates. It is safe for concurrent use.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector for the given ISO 639-1 codes.
// At least two distinct candidates are required.
func NewLanguageDetector(codes []string) (*LanguageDetector, error) {
	seen := make(map[lingua.Language]bool)
	var langs []lingua.Language
	for _, code := range codes {
		lang, ok := languageFor(code)
		if !ok {
			return nil, fmt.Errorf("unknown language code %q", code)
		}
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language check needs at least two candidate languages, got %d", len(langs))
	}

	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
	}, nil
}

func languageFor(code string) (lingua.Language, bool) {
	code = strings.TrimSpace(code)
	for _, l := range lingua.AllLanguages() {
		if strings.EqualFold(l.IsoCode639_1().String(), code) {
			return l, true
		}
	}
	return lingua.Unknown, false
}

// Detect returns the lowercase ISO 639-1 code of the most likely language.
func (d *LanguageDetector) Detect(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// Language compares each page's declared <html lang> with the language
// detected in its main text. Pages without a declared language or with too
// little main text are skipped.
func Language(pages []models.PageFacts, d *LanguageDetector) []models.Finding {
	var findings []models.Finding
	for _, p := range pages {
		declared := primarySubtag(p.Lang)
		if declared == "" || utf8.RuneCountInString(p.MainText) < MinLanguageText {
			continue
		}
		detected, ok := d.Detect(p.MainText)
		if !ok || detected == declared {
			continue
		}
		findings = append(findings, models.Finding{
			Kind:   models.FindingLanguageMismatch,
			Page:   p.Path,
			Detail: fmt.Sprintf("declared %s, detected %s", declared, detected),
		})
	}
	return findings
}

// primarySubtag reduces a BCP 47 tag such as "de-DE" to "de".
func primarySubtag(tag string) string {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return ""
	}
	base, _ := t.Base()
	return base.String()
}
