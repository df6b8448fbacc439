package headers

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	in := []string{"User-Agent: Bot", "accept-language: ru-RU", "Cookie: a=b:c", "BadHeader", ": empty"}
	out := ParseHeaders(in)
	expected := map[string]string{
		"User-Agent":      "Bot",
		"Accept-Language": "ru-RU",
		"Cookie":          "a=b:c",
	}
	if !reflect.DeepEqual(out, expected) {
		t.Fatalf("unexpected parse result: %#v", out)
	}
}
