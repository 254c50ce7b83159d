package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	for _, s := range []string{"ko", "en", "ja", "hi"} {
		l, err := ParseLanguage(s)
		assert.Nil(t, err)
		assert.Equal(t, Language(s), l)
	}
}

func TestParseLanguage_Fails(t *testing.T) {
	for _, s := range []string{"", "KO", "lt", "english"} {
		_, err := ParseLanguage(s)
		assert.NotNil(t, err)
	}
}

func TestParseBackend(t *testing.T) {
	for _, s := range []string{"GOOGLE", "M2M", "GPT"} {
		b, err := ParseBackend(s)
		assert.Nil(t, err)
		assert.Equal(t, Backend(s), b)
	}
}

func TestParseBackend_Fails(t *testing.T) {
	for _, s := range []string{"", "google", "PAPAGO"} {
		_, err := ParseBackend(s)
		assert.NotNil(t, err)
	}
}
