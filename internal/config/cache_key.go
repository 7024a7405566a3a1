package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentLoginKey returns the cache key holding a student's active login JTI.
func (r *CacheKeyStruct) StudentLoginKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// ResponseSessionKey returns the cache key for a student's checkpointed
// response session on one survey.
func (r *CacheKeyStruct) ResponseSessionKey(surveyID string, studentID int) string {
	return fmt.Sprintf("student:%d:survey:%s:session", studentID, surveyID)
}

// SurveyPayloadKey returns the cache key for a published survey's payload
// (title + ordered questions) served to respondents.
func (r *CacheKeyStruct) SurveyPayloadKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:payload", surveyID)
}

// SurveyStatsKey returns the cache key for a survey's computed statistics.
func (r *CacheKeyStruct) SurveyStatsKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:stats", surveyID)
}

// SurveyResultsChannel returns the Redis PubSub channel carrying live
// submission events for a survey.
func (r *CacheKeyStruct) SurveyResultsChannel(surveyID string) string {
	return fmt.Sprintf("survey:%s:results", surveyID)
}

var CacheKey = NewCacheKeyStruct()
