package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternStar(t *testing.T) {
	p, err := CompilePattern("*.txt", false)
	require.NoError(t, err)

	assert.True(t, p.Match("a.txt"))
	assert.True(t, p.Match(".txt"))
	assert.False(t, p.Match("a.txt.bak"))
	assert.False(t, p.Match("a.TXT"))
}

func TestPatternQuestion(t *testing.T) {
	p, err := CompilePattern("IMG_00?.jpg", false)
	require.NoError(t, err)

	assert.True(t, p.Match("IMG_001.jpg"))
	assert.False(t, p.Match("IMG_0012.jpg"))
	assert.False(t, p.Match("IMG_00.jpg"))
}

func TestPatternClasses(t *testing.T) {
	p, err := CompilePattern("[ab]*", false)
	require.NoError(t, err)
	assert.True(t, p.Match("apple"))
	assert.True(t, p.Match("banana"))
	assert.False(t, p.Match("cherry"))

	p, err = CompilePattern("[!ab]*", false)
	require.NoError(t, err)
	assert.False(t, p.Match("apple"))
	assert.True(t, p.Match("cherry"))
}

func TestPatternQuotesRegexMeta(t *testing.T) {
	p, err := CompilePattern("report (1)+v2.txt", false)
	require.NoError(t, err)
	assert.True(t, p.Match("report (1)+v2.txt"))
	assert.False(t, p.Match("report 1v2.txt"))

	p, err = CompilePattern("a.b", false)
	require.NoError(t, err)
	assert.False(t, p.Match("axb"))
}

func TestPatternUnclosedBracketIsLiteral(t *testing.T) {
	p, err := CompilePattern("[draft", false)
	require.NoError(t, err)
	assert.True(t, p.Match("[draft"))
}

func TestPatternIgnoreCase(t *testing.T) {
	p, err := CompilePattern("*.jpg", true)
	require.NoError(t, err)
	assert.True(t, p.Match("DSC0001.JPG"))
	assert.True(t, p.Match("dsc0001.jpg"))
}

func TestPatternUnicodeNames(t *testing.T) {
	p, err := CompilePattern("café-*.txt", false)
	require.NoError(t, err)
	assert.True(t, p.Match("café-menu.txt"))
	assert.False(t, p.Match("cafe-menu.txt"))
}

func TestPatternEmptyMatchesEverything(t *testing.T) {
	p, err := CompilePattern("", false)
	require.NoError(t, err)
	assert.True(t, p.Match("anything"))
	assert.Equal(t, "*", p.String())
}

func TestPatternRejectsSeparators(t *testing.T) {
	_, err := CompilePattern("sub/*.txt", false)
	assert.Error(t, err)
	_, err = CompilePattern(`sub\*.txt`, false)
	assert.Error(t, err)
}
