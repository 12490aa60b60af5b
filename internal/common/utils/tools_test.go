package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	assert.Len(t, id, 12)
	for _, r := range id {
		assert.Contains(t, AlphaNum, string(r))
	}
}

func TestGenerateInterviewID(t *testing.T) {
	id := GenerateInterviewID()
	assert.True(t, strings.HasPrefix(id, "INT-"))
	parts := strings.Split(id, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 9)
}

func TestSha256Hex(t *testing.T) {
	// sha256("secret")
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", Sha256Hex("secret"))
	assert.NotEqual(t, Sha256Hex("a"), Sha256Hex("b"))
}

func TestRandomPassword(t *testing.T) {
	p1 := RandomPassword(12)
	p2 := RandomPassword(12)
	assert.Len(t, p1, 12)
	assert.NotEqual(t, p1, p2)
}
