package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestNewManagerLoadsEmbeddedLocales(t *testing.T) {
	manager, err := NewManager("es")
	require.NoError(t, err)

	require.Equal(t, LangES, manager.DefaultLanguage())
	require.Equal(t, []string{LangEN, LangES}, manager.SupportedLanguages())
	require.Equal(t, "queso", manager.Translate(LangES, "food.cheese"))
	require.Equal(t, "cheese", manager.Translate(LangEN, "food.cheese"))
}

func TestNormalizeLanguageFallsBackToDefault(t *testing.T) {
	manager, err := NewManager("")
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "es_ES.UTF-8", want: LangES},
		{raw: "en_US:en", want: LangEN},
		{raw: "ES", want: LangES},
		{raw: "ru", want: LangEN},
		{raw: "", want: LangEN},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, manager.NormalizeLanguage(tt.raw))
		})
	}
}

func TestTranslateReturnsKeyWhenMissing(t *testing.T) {
	manager, err := NewManager(LangEN)
	require.NoError(t, err)

	require.Equal(t, "no.such.key", manager.Translate(LangES, "no.such.key"))
}

func TestTranslateFallsBackToDefaultLanguageMessages(t *testing.T) {
	files := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"greeting":"hello","farewell":"bye"}`)},
		"locales/es.json": {Data: []byte(`{"greeting":"hola"}`)},
	}
	manager, err := NewManagerFromFS(LangEN, files, "locales")
	require.NoError(t, err)

	require.Equal(t, "hola", manager.Translate(LangES, "greeting"))
	require.Equal(t, "bye", manager.Translate(LangES, "farewell"))
}

func TestNewManagerRequiresEnglishLocale(t *testing.T) {
	files := fstest.MapFS{
		"locales/es.json": {Data: []byte(`{"greeting":"hola"}`)},
	}
	_, err := NewManagerFromFS(LangES, files, "locales")
	require.Error(t, err)
}
