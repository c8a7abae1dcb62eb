package model

import (
	"fmt"
	"time"
)

// ReactionValue is a signed vote: Like (+1) or Dislike (-1).
type ReactionValue int

const (
	Like    ReactionValue = 1
	Dislike ReactionValue = -1
)

// Valid reports whether v is one of the two sentinel values.
func (v ReactionValue) Valid() bool {
	return v == Like || v == Dislike
}

func (v ReactionValue) String() string {
	switch v {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	}
	return fmt.Sprintf("ReactionValue(%d)", int(v))
}

// ParseReactionValue maps "like"/"dislike" (or "1"/"-1") to a value.
func ParseReactionValue(s string) (ReactionValue, error) {
	switch s {
	case "like", "+1", "1":
		return Like, nil
	case "dislike", "-1":
		return Dislike, nil
	}
	return 0, fmt.Errorf("unknown reaction %q: must be like or dislike", s)
}

// Reaction is a user's vote on an article.
type Reaction struct {
	ID        int64         `json:"id"`
	Article   int64         `json:"article"`
	User      int64         `json:"user"`
	Value     ReactionValue `json:"value"`
	CreatedAt time.Time     `json:"created_at"`
}
