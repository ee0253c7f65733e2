package placeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"slug path", "https://yandex.ru/maps/org/kofejnya/123456789/", "123456789", true},
		{"slug path with tab", "https://yandex.ru/maps/org/kofejnya/123456789/reviews/", "123456789", true},
		{"slug path no trailing slash", "https://yandex.ru/maps/org/kofejnya/123456789", "123456789", true},
		{"bare path", "https://yandex.ru/maps/org/1018907821/", "1018907821", true},
		{"city prefix", "https://yandex.ru/maps/213/moscow/org/dobro/55555/", "55555", true},
		{"poi uri", "https://yandex.ru/maps/?poi[uri]=ymapsbm1%3A%2F%2Forg%3Foid%3D42", "42", true},
		{"poi uri long", "https://yandex.ru/maps/?ll=37.6,55.7&poi%5Buri%5D=ymapsbm1%3A%2F%2Forg%3Foid%3D1234567890&z=17", "1234567890", true},
		{"oid param", "https://yandex.ru/maps/?oid=77777777&ol=biz", "77777777", true},
		{"poi beats path", "https://yandex.ru/maps/org/cafe/99999/?poi[uri]=ymapsbm1%3A%2F%2Forg%3Foid%3D12345678", "12345678", true},
		{"short path id", "https://yandex.ru/maps/org/cafe/1234/", "", false},
		{"map view", "https://yandex.ru/maps/213/moscow/?z=16", "", false},
		{"empty", "", "", false},
		{"garbage", "::not a url::", "", false},
		{"non numeric oid", "https://yandex.ru/maps/?oid=abc", "", false},
		{"no scheme", "yandex.ru/maps/org/kofejnya/123456789/", "123456789", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NeverPanics(t *testing.T) {
	inputs := []string{"%", "http://[::1", "/org//", "?poi[uri]=%zz", "/org/%/12345/"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Extract(in) }, in)
		assert.NotPanics(t, func() { Slug(in) }, in)
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "kofejnya_dobro", Slug("https://yandex.ru/maps/org/kofejnya_dobro/123456789/"))
	assert.Equal(t, "", Slug("https://yandex.ru/maps/org/123456789/"))
	assert.Equal(t, "", Slug("https://yandex.ru/maps/?oid=123456789"))
	assert.Equal(t, "", Slug("https://yandex.ru/maps/org/cafe/12/"))
}

func TestNameFromSlug(t *testing.T) {
	assert.Equal(t, "Kofejnya Dobro", NameFromSlug("kofejnya_dobro"))
	assert.Equal(t, "Sushi Bar", NameFromSlug("sushi-bar"))
	assert.Equal(t, "Кофейня", NameFromSlug("кофейня"))
	assert.Equal(t, "", NameFromSlug("__"))
}
