package chats

import "strings"

const titleWordLimit = 6

// Title derives a chat title from the first user message: the message
// itself when it is short, otherwise its first six words with an
// ellipsis.
func Title(message string) string {
	words := strings.Fields(message)
	if len(words) <= titleWordLimit {
		return message
	}
	return strings.Join(words[:titleWordLimit], " ") + "..."
}
