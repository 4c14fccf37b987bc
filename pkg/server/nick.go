package server

import (
	"regexp"

	petname "github.com/dustinkirkland/golang-petname"
)

const MaxNickLength = 10

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-!@#$%^&*+=,./]+`)

// Nickname strips a user name down to something safe to print. Users
// without a usable name get a generated one.
func Nickname(nick string) string {
	nick = nickRegexp.ReplaceAllString(nick, "")
	if nick == "" {
		nick = petname.Generate(2, "-")
	}
	if len(nick) > MaxNickLength {
		nick = nick[:MaxNickLength]
	}

	return nick
}
