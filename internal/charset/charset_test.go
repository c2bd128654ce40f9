package charset

import (
	"strings"
	"testing"
)

func TestDetectEmptyFallsBackToDefault(t *testing.T) {
	if got := Detect(nil); got != Default {
		t.Fatalf("expected %q for empty input, got %q", Default, got)
	}
}

func TestDetectUTF8(t *testing.T) {
	raw := []byte("Привет, мир! Это проверка автоматического определения кодировки текста.")

	if got := Detect(raw); got != "UTF-8" {
		t.Fatalf("expected UTF-8, got %q", got)
	}
}

func TestDetectMostlyASCIIUTF8(t *testing.T) {
	for _, input := range []string{
		"Der Bericht über die Sitzung in Köln wurde gestern veröffentlicht.",
		"Müller",
		"Crème brûlée and café au lait.",
	} {
		if got := Detect([]byte(input)); got != Default {
			t.Fatalf("expected %q for %q, got %q", Default, input, got)
		}
	}
}

func TestDetectUTF8WithByteOrderMark(t *testing.T) {
	raw := append([]byte(byteOrderMark), "Grüße aus München"...)

	if got := Detect(raw); got != Default {
		t.Fatalf("expected %q, got %q", Default, got)
	}
}

func TestDecodeAutoKeepsUmlauts(t *testing.T) {
	input := "Der Bericht über die Sitzung in Köln wurde gestern veröffentlicht."

	text, name := DecodeAuto([]byte(input))
	if name != Default {
		t.Fatalf("expected charset %q, got %q", Default, name)
	}

	if text != input {
		t.Fatalf("expected text unchanged, got %q", text)
	}
}

func TestDecodeWindows1251(t *testing.T) {
	raw := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}

	if got := Decode(raw, "windows-1251"); got != "Привет" {
		t.Fatalf("unexpected decoded text: %q", got)
	}
}

func TestDecodeLatin1(t *testing.T) {
	raw := []byte{'c', 'a', 'f', 0xE9}

	if got := Decode(raw, "ISO-8859-1"); got != "café" {
		t.Fatalf("unexpected decoded text: %q", got)
	}
}

func TestDecodeReplacesInvalidSequences(t *testing.T) {
	raw := []byte{'o', 'k', 0xFF, '!'}

	got := Decode(raw, "UTF-8")
	if !strings.HasPrefix(got, "ok") || !strings.HasSuffix(got, "!") {
		t.Fatalf("expected surrounding text to survive, got %q", got)
	}

	if !strings.ContainsRune(got, unicodeReplacement) {
		t.Fatalf("expected replacement character in %q", got)
	}
}

func TestDecodeUnknownCharsetFallsBackToUTF8(t *testing.T) {
	if got := Decode([]byte("plain"), "no-such-charset"); got != "plain" {
		t.Fatalf("unexpected decoded text: %q", got)
	}
}

func TestDecodeDropsByteOrderMark(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)

	if got := Decode(raw, "UTF-8"); got != "hello" {
		t.Fatalf("expected BOM to be dropped, got %q", got)
	}
}

func TestDecodeAutoEmpty(t *testing.T) {
	text, name := DecodeAuto(nil)
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}

	if name != Default {
		t.Fatalf("expected %q, got %q", Default, name)
	}
}
