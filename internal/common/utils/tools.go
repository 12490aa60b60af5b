package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"
	"strings"
	"time"
)

const AlphaNum = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID utils func: for 12-digit random id generation
func GenerateID() string {
	idLength := 12
	stringBuilder := strings.Builder{}
	for i := 0; i < idLength; i++ {
		index := mathrand.Intn(36)
		stringBuilder.WriteRune(rune(AlphaNum[index]))
	}
	return stringBuilder.String()
}

// GenerateInterviewID 生成对接方可见的面试ID，形如 INT-<毫秒时间戳>-<随机串>。
func GenerateInterviewID() string {
	suffix := strings.Builder{}
	for i := 0; i < 9; i++ {
		suffix.WriteRune(rune(AlphaNum[mathrand.Intn(36)]))
	}
	return fmt.Sprintf("INT-%d-%s", time.Now().UnixMilli(), suffix.String())
}

// Sha256Hex 候选人口令的单向摘要，hex小写。
func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// RandomPassword 生成长度为n的临时口令。
func RandomPassword(n int) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	s := base64.RawURLEncoding.EncodeToString(buf)
	if len(s) > n {
		s = s[:n]
	}
	return s
}

func NewReqID() string {
	return GenerateID()
}
