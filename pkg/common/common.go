package common

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

var idNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	idNode = node
}

// UUIDint64 returns a unique snowflake id
func UUIDint64() int64 {
	return idNode.Generate().Int64()
}

// IsDigits reports whether s is a non-empty string of ASCII digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaskCardNumber keeps the last four digits visible
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
