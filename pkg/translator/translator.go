package translator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder string
	// SupportedLanguages limits which <lang>.toml files are loaded. Empty loads every file.
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		lang := strings.TrimSuffix(f.Name(), ".toml")
		if !isSupported(cfg.SupportedLanguages, lang) {
			zap.L().Debug("skipping unsupported translation file", zap.String("file", f.Name()))
			continue
		}

		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

func isSupported(supported []string, lang string) bool {
	if len(supported) == 0 {
		return true
	}
	for _, candidate := range supported {
		if candidate == lang {
			return true
		}
	}
	return false
}
