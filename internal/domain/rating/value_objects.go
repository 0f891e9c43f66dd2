package rating

import "strings"

const MaxCommentLength = 1000

type Score struct {
	value int
}

func NewScore(v int) (Score, error) {
	if v < 1 || v > 5 {
		return Score{}, ErrInvalidScore
	}
	return Score{value: v}, nil
}

func (s Score) Value() int { return s.value }

// Comment is optional; an empty comment is stored as NULL.
type Comment struct {
	text string
}

func NewComment(s string) (Comment, error) {
	t := strings.TrimSpace(s)
	if len([]rune(t)) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{text: t}, nil
}

func (c Comment) String() string { return c.text }
func (c Comment) IsEmpty() bool  { return c.text == "" }
