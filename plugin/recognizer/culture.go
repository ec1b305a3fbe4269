package recognizer

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Culture codes known to the recognizers. Codes are lower case BCP 47 tags.
const (
	CultureEnglish        = "en-us"
	CultureEnglishBritish = "en-gb"
	CultureChinese        = "zh-cn"
)

// DefaultCulture is the culture models fall back to.
const DefaultCulture = CultureEnglish

// MapToNearestLanguage maps cultureCode onto the closest entry of
// supported. An exact match wins; otherwise the language matcher picks the
// best candidate, and a plain language base comparison breaks a "no match"
// verdict. The normalized input is returned when nothing fits.
func MapToNearestLanguage(cultureCode string, supported []string) string {
	code := strings.ToLower(strings.TrimSpace(cultureCode))
	if code == "" || slices.Contains(supported, code) {
		return code
	}

	want, err := language.Parse(code)
	if err != nil {
		return code
	}

	names := make([]string, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		names = append(names, s)
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return code
	}

	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf != language.No && idx >= 0 && idx < len(names) {
		return names[idx]
	}

	wantBase, _ := want.Base()
	for i, tag := range tags {
		if base, _ := tag.Base(); base == wantBase {
			return names[i]
		}
	}
	return code
}
