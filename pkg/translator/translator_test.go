package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"tasktime/pkg/translator"
)

func localize(t *testing.T, lang, id string) (string, error) {
	t.Helper()
	localizer := i18n.NewLocalizer(translator.Translator, lang)
	return localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
}

func TestInitTranslator_LoadsShippedBundles(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	msg, err := localize(t, translator.LanguageEn, "taskNotFound")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Task not found" {
		t.Errorf("expected %q, got %q", "Task not found", msg)
	}

	msg, err = localize(t, translator.LanguageFr, "taskNotFound")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Tâche introuvable" {
		t.Errorf("expected %q, got %q", "Tâche introuvable", msg)
	}
}

func TestInitTranslator_SkipsUnsupportedLanguages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`hello = "Hello english"`), 0644); err != nil {
		t.Fatalf("failed to write en.toml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "de.toml"), []byte(`hello = "Hallo"`), 0644); err != nil {
		t.Fatalf("failed to write de.toml: %v", err)
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn},
	})

	if tags := translator.Translator.LanguageTags(); len(tags) != 1 {
		t.Errorf("expected only english to be loaded, got %v", tags)
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})

	if translator.Translator == nil {
		t.Fatal("expected an empty bundle")
	}
}
