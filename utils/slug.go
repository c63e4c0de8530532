package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug appends a unix-timestamp suffix so two products with the same
// name never collide.
func UniqueSlug(name string) string {
	return fmt.Sprintf("%s-%d", Slugify(name), time.Now().UnixMilli())
}
