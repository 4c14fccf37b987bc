package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/mino"
)

func TestImportThemes(t *testing.T) {
	th, err := ImportThemes("basic", nil)
	require.NoError(t, err)
	assert.Equal(t, ThemeBasic, th)

	_, err = ImportThemes("missing", nil)
	assert.Error(t, err)

	custom := ThemeHex{
		Name:  "custom",
		Empty: "#0",
		White: "#ffffff",
		Blue:  "navy",
		Green: "#00e900",
	}
	th, err = ImportThemes("custom", []ThemeHex{custom})
	require.NoError(t, err)
	assert.Equal(t, "custom", th.Name)
	assert.Equal(t, tcell.ColorDefault, th.Empty)
	assert.Equal(t, tcell.ColorNavy, th.Blue)
	assert.Equal(t, int32(0x00e900), th.Green.Hex())
	assert.Equal(t, custom.Green, th.Hex().Green)
}

func TestImportThemesOverridesBasic(t *testing.T) {
	th, err := ImportThemes("basic", []ThemeHex{{Name: "basic", White: "#101010"}})
	require.NoError(t, err)
	assert.Equal(t, int32(0x101010), th.White.Hex())
}

func TestImportThemesBadColor(t *testing.T) {
	for _, c := range []string{"#12", "#zzzzzz", "notacolor"} {
		_, err := ImportThemes("bad", []ThemeHex{{Name: "bad", Cyan: c}})
		assert.Error(t, err, c)
	}
}

func TestThemeHexRoundTrip(t *testing.T) {
	th, err := ThemeBasic.Hex().Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeBasic.Hex(), th.Hex())
}

func TestThemeBlock(t *testing.T) {
	assert.Equal(t, ThemeBasic.Empty, ThemeBasic.Block(mino.BlockNone))
	assert.Equal(t, ThemeBasic.White, ThemeBasic.Block(mino.BlockWhite))
	assert.Equal(t, ThemeBasic.Green, ThemeBasic.Block(mino.BlockGreen))

	for b := mino.Block(1); b <= mino.Block(mino.BlockColors); b++ {
		assert.NotEqual(t, ThemeBasic.Empty, ThemeBasic.Block(b), b.String())
	}
}

func TestThemeFaded(t *testing.T) {
	none := ThemeBasic.Faded(0)
	assert.Equal(t, ThemeBasic.White.Hex(), none.White.Hex())
	assert.Equal(t, ThemeBasic.Blue.Hex(), none.Blue.Hex())

	full := ThemeBasic.Faded(1)
	assert.Equal(t, int32(0x404040), full.White.Hex())
	assert.Equal(t, int32(0x404040), full.Green.Hex())

	// Default colors have no RGB value and are left alone
	assert.Equal(t, tcell.ColorDefault, full.Empty)
	assert.Equal(t, ThemeBasic.Name, full.Name)
}
