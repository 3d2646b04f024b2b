package i18n

import (
	"strings"
	"testing"
)

func TestT_English(t *testing.T) {
	SetLanguage("en")
	t.Cleanup(func() { SetLanguage("") })

	if got := T("no_daemons"); got != "No daemons found on the local network" {
		t.Errorf("T(no_daemons) = %q", got)
	}
	if got := T("config_heading"); got != "Configurations" {
		t.Errorf("T(config_heading) = %q", got)
	}
}

func TestT_Spanish(t *testing.T) {
	SetLanguage("es")
	t.Cleanup(func() { SetLanguage("") })

	if got := T("no_daemons"); got != "No se encontraron daemons en la red local" {
		t.Errorf("T(no_daemons) = %q", got)
	}
	if got := T("language_heading"); got != "Idiomas" {
		t.Errorf("T(language_heading) = %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	SetLanguage("en")
	t.Cleanup(func() { SetLanguage("") })

	if got := T("definitely_not_a_message"); got != "definitely_not_a_message" {
		t.Errorf("T(unknown) = %q, want the ID back", got)
	}
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	SetLanguage("fr")
	t.Cleanup(func() { SetLanguage("") })

	if got := T("no_daemons"); got != "No daemons found on the local network" {
		t.Errorf("T(no_daemons) with unknown language = %q, want English", got)
	}
}

func TestTf_TemplateData(t *testing.T) {
	SetLanguage("en")
	t.Cleanup(func() { SetLanguage("") })

	got := Tf("value_updated", map[string]any{"Key": "database.host", "Name": "app"})
	if got != "Updated database.host in app" {
		t.Errorf("Tf(value_updated) = %q", got)
	}
}

func TestTn_Plurals(t *testing.T) {
	SetLanguage("en")
	t.Cleanup(func() { SetLanguage("") })

	tests := []struct {
		count int
		want  string
	}{
		{1, "Found 1 daemon"},
		{3, "Found 3 daemons"},
	}

	for _, tt := range tests {
		if got := Tn("daemons_found", tt.count); got != tt.want {
			t.Errorf("Tn(daemons_found, %d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestTn_PluralsSpanish(t *testing.T) {
	SetLanguage("es")
	t.Cleanup(func() { SetLanguage("") })

	if got := Tn("daemons_found", 2); got != "Encontrados 2 daemons" {
		t.Errorf("Tn(daemons_found, 2) = %q", got)
	}
}

func TestEnvVarSelection(t *testing.T) {
	t.Setenv(LangEnvVar, "es")
	SetLanguage("")
	t.Cleanup(func() { SetLanguage("") })

	if got := T("no_documents"); got != "No hay documentos cargados" {
		t.Errorf("T(no_documents) with DOTJSON_LANG=es = %q", got)
	}
}

func TestDetectLanguagesParsesLANG(t *testing.T) {
	t.Setenv(LangEnvVar, "")
	t.Setenv("LANG", "es_ES.UTF-8")

	langs := detectLanguages()
	joined := strings.Join(langs, ",")
	if !strings.Contains(joined, "es") {
		t.Errorf("detectLanguages() = %v, want es from LANG", langs)
	}
	if langs[len(langs)-1] != "en" {
		t.Errorf("detectLanguages() = %v, want en as final fallback", langs)
	}
}
