package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// QuizPayloadKey returns the cache key for a quiz's taker-facing payload
// (no correct answers)
func (r *CacheKeyStruct) QuizPayloadKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:payload", quizID)
}

// QuizDefinitionKey returns the cache key for a quiz's full definition,
// correct answers included. Server-side only, never sent to clients.
func (r *CacheKeyStruct) QuizDefinitionKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:definition", quizID)
}

var CacheKey = NewCacheKeyStruct()
