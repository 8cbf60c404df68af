package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"tasktime/pkg/translator"
)

const langKey = "lang"

var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.French})

// LanguageMiddleware picks the response language from the Accept-Language header, defaulting to english.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, negotiateLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func negotiateLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	_, idx, confidence := languageMatcher.Match(tags...)
	if confidence == language.No || idx != 1 {
		return translator.LanguageEn
	}
	return translator.LanguageFr
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
