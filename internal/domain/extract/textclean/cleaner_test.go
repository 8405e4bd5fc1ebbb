package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_CharacterConfusions(t *testing.T) {
	c := NewCleaner(nil)

	t.Run("letter O becomes zero next to digits", func(t *testing.T) {
		assert.Equal(t, "06/03", c.Clean("O6/O3"))
	})

	t.Run("lowercase l becomes one next to digits", func(t *testing.T) {
		assert.Equal(t, "12/01", c.Clean("l2/O1"))
	})

	t.Run("words are left alone", func(t *testing.T) {
		assert.Equal(t, "SAFEWAY STORE", c.Clean("SAFEWAY STORE"))
	})

	t.Run("S and B repaired only inside numbers", func(t *testing.T) {
		got := c.Clean("CHECK 1S4B  12.00")
		assert.Contains(t, got, "1548")
		assert.Contains(t, got, "CHECK")
	})
}

func TestClean_Merchants(t *testing.T) {
	c := NewCleaner(nil)

	t.Run("known garble table", func(t *testing.T) {
		got := c.Clean("06/03  BANK 0F AMERICA PAYMENT  50.00")
		assert.Contains(t, got, "BANK OF AMERICA")
	})

	t.Run("fuzzy repair within distance one", func(t *testing.T) {
		got := c.Clean("06/03  STARBUCKZ COFFEE  5.75")
		assert.Contains(t, got, "STARBUCKS")
	})

	t.Run("fabletics garble", func(t *testing.T) {
		got := c.Clean("06/03 06/04 IBI*FABLETLCS.COM 844-3225384 CA 4343 7230 28.21")
		assert.Contains(t, got, "FABLETICS")
	})
}

func TestClean_Amounts(t *testing.T) {
	c := NewCleaner(nil)

	t.Run("equals sign stripped", func(t *testing.T) {
		got := c.Clean("STORE PURCHASE =45.00")
		assert.Contains(t, got, "45.00")
		assert.NotContains(t, got, "=")
	})

	t.Run("decimal comma to point", func(t *testing.T) {
		got := c.Clean("STORE PURCHASE 45,00")
		assert.Contains(t, got, "45.00")
	})

	t.Run("garbled amount literal", func(t *testing.T) {
		got := c.Clean("COFFEE SHOP S.OO")
		assert.Contains(t, got, "5.00")
	})

	t.Run("trailing bare integer with common cents reconstructed", func(t *testing.T) {
		got := c.Clean("GROCERY STORE 4599")
		assert.Contains(t, got, "45.99")
	})

	t.Run("trailing integer with uncommon cents left alone", func(t *testing.T) {
		got := c.Clean("GROCERY STORE 4537")
		assert.Contains(t, got, "4537")
	})

	t.Run("mid-line reference numbers untouched", func(t *testing.T) {
		got := c.Clean("06/03 06/04 STORE 4343 7230 28.21")
		assert.Contains(t, got, "4343")
		assert.Contains(t, got, "7230")
	})
}

func TestClean_LineNormalization(t *testing.T) {
	c := NewCleaner(nil)

	t.Run("dash variants unified", func(t *testing.T) {
		assert.Equal(t, "STORE - 12.00", c.Clean("STORE – 12.00"))
	})

	t.Run("line structure preserved", func(t *testing.T) {
		got := c.Clean("line one\nline two")
		assert.Equal(t, "line one\nline two", got)
	})

	t.Run("whitespace runs collapsed to two spaces", func(t *testing.T) {
		assert.Equal(t, "A  B", c.Clean("A      B"))
	})
}

func TestClean_CustomTables(t *testing.T) {
	tables := DefaultTables()
	tables.Merchants["G00GLE"] = "GOOGLE"
	c := NewCleaner(tables)

	got := c.Clean("06/03 G00GLE SERVICES 9.99")
	assert.Contains(t, got, "GOOGLE")
}
