package redis

import (
	"fmt"

	"github.com/jmg/scrabbly/internal/model"
)

// Key prefix for all stored data
const keyPrefix = "scrabbly"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of known game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// lexiconKey returns the Redis key for a language's word set
func lexiconKey(lang model.Language) string {
	return fmt.Sprintf("%s:lexicon:%s", keyPrefix, lang)
}
