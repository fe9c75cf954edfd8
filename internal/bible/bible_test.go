package bible

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<bible version="NVI">
  <book title="Juan">
    <chapter num="3">
      <verse num="16">Porque de tal manera amó Dios al mundo</verse>
      <verse num="17">Porque no envió Dios a su Hijo al mundo para condenar</verse>
      <verse num="18">El que en él cree, no es condenado</verse>
    </chapter>
  </book>
  <book title="Salmos">
    <chapter num="23">
      <verse num="1">Jehová es mi pastor; nada me faltará</verse>
    </chapter>
  </book>
</bible>`

func TestParse(t *testing.T) {
	b, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, "NVI", b.Version)
	require.Len(t, b.Books, 2)

	juan := b.FindBook("Juan")
	require.NotNil(t, juan)
	ch := juan.FindChapter(3)
	require.NotNil(t, ch)
	require.Len(t, ch.Verses, 3)
	assert.Equal(t, 16, ch.Verses[0].Num)
	assert.Equal(t, "Porque de tal manera amó Dios al mundo", ch.Verses[0].Text)
}

func TestParse_RejectsMalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<bible><book"))
	assert.Error(t, err)
}

func TestFindBook_Missing(t *testing.T) {
	b, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)
	assert.Nil(t, b.FindBook("Apocalipsis"))
}

func TestPassageContent(t *testing.T) {
	verses := []Verse{
		{Num: 16, Text: "Porque de tal manera"},
		{Num: 17, Text: "Porque no envió"},
	}
	content := PassageContent(verses)
	assert.Equal(t, "16. Porque de tal manera\n17. Porque no envió", content)
}

func TestLoader_CachesParsedBible(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spa-NVI.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o644))

	loader := NewLoader(dir)

	first, err := loader.Load("NVI")
	require.NoError(t, err)

	// Removing the file proves the second load comes from the cache.
	require.NoError(t, os.Remove(path))

	second, err := loader.Load("NVI")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoader_EmptyVersionUsesDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spa-NVI.xml"), []byte(sampleXML), 0o644))

	loader := NewLoader(dir)
	b, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, "NVI", b.Version)
}

func TestLoader_UnknownVersionFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spa-NVI.xml"), []byte(sampleXML), 0o644))

	loader := NewLoader(dir)
	b, err := loader.Load("KJV")
	require.NoError(t, err)
	assert.Equal(t, "NVI", b.Version)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir())
	_, err := loader.Load("NVI")
	assert.Error(t, err)
}
