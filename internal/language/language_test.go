package language_test

import (
	"docanalyzer/internal/language"
	"errors"
	"testing"
)

func TestDetectEnglish(t *testing.T) {
	text := "The quarterly report describes how the company expanded its operations " +
		"across several regions and what the board expects for the coming year."

	got, err := language.Detect(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "en" {
		t.Fatalf("unexpected language: %q", got)
	}
}

func TestDetectRussian(t *testing.T) {
	text := "Квартальный отчёт описывает, как компания расширила свою деятельность " +
		"в нескольких регионах и чего совет директоров ожидает в следующем году."

	got, err := language.Detect(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "ru" {
		t.Fatalf("unexpected language: %q", got)
	}
}

func TestDetectBlank(t *testing.T) {
	if _, err := language.Detect("   \n\t"); !errors.Is(err, language.ErrUndetermined) {
		t.Fatalf("expected ErrUndetermined, got %v", err)
	}
}

func TestDetectWithoutLetters(t *testing.T) {
	if _, err := language.Detect("12345 !!! 678"); !errors.Is(err, language.ErrUndetermined) {
		t.Fatalf("expected ErrUndetermined, got %v", err)
	}
}
