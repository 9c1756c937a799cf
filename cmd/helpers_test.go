package cmd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrDash(t *testing.T) {
	assert.Equal(t, "—", orDash(""))
	assert.Equal(t, "HAIN", orDash("HAIN"))
}

func TestMustValueDropsLoadedFlag(t *testing.T) {
	v := mustValue(big.NewInt(7), true)
	assert.Equal(t, big.NewInt(7), v)

	var missing *big.Int
	assert.Nil(t, mustValue(missing, false))
}
