package compassController

import (
	"context"
	"strings"
	"time"

	"civic/internal/database"
	"civic/internal/logger"
	. "civic/internal/models"
)

// DefaultShortTitles are the six topics the comparison chart renders
// by default.
var DefaultShortTitles = []string{
	"Abortion",
	"Gun Control",
	"Education",
	"Climate Change",
	"Healthcare",
	"Policing",
}

const topicsCacheKey = "compass:topics"

// Backend is the compass slice of the essentials client.
type Backend interface {
	Topics(ctx context.Context) ([]CompassTopic, error)
	PoliticianAnswers(ctx context.Context, id string) ([]CompassAnswer, error)
}

type CompassController struct {
	backend  Backend
	cache    database.CacheClient
	cacheTTL time.Duration
	log      logger.Logger
}

func New(backend Backend, cache database.CacheClient, cacheTTL time.Duration) *CompassController {
	return &CompassController{
		backend:  backend,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      logger.New("compassController"),
	}
}

// Chart is the payload behind one politician's comparison view.
type Chart struct {
	Topics         []CompassTopic     `json:"topics"`
	AnswersByShort map[string]float64 `json:"answersByShort"`
}

// ChartFor fetches topics and the politician's answers and builds the
// chart payload over the default topic set.
func (c *CompassController) ChartFor(ctx context.Context, politicianID string) (Chart, error) {
	log := c.log.Function("ChartFor")

	topics, err := c.topics(ctx)
	if err != nil {
		return Chart{}, log.Err("failed to fetch topics", err)
	}

	answers, err := c.backend.PoliticianAnswers(ctx, politicianID)
	if err != nil {
		return Chart{}, log.Err("failed to fetch answers", err, "politicianID", politicianID)
	}

	filtered, byShort := BuildAnswerMap(topics, answers, DefaultShortTitles)
	return Chart{Topics: filtered, AnswersByShort: byShort}, nil
}

// topics returns the full topic list, cached: topics change rarely and
// every profile view needs them.
func (c *CompassController) topics(ctx context.Context) ([]CompassTopic, error) {
	log := c.log.Function("topics")

	if c.cache != nil {
		var cached []CompassTopic
		found, err := database.NewCacheBuilder(c.cache, topicsCacheKey).
			WithContext(ctx).
			Get(&cached)
		if err == nil && found {
			return cached, nil
		}
	}

	topics, err := c.backend.Topics(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := database.NewCacheBuilder(c.cache, topicsCacheKey).
			WithStruct(topics).
			WithTTL(c.cacheTTL).
			WithContext(ctx).
			Set(); err != nil {
			log.Warn("failed to cache topics", "error", err)
		}
	}

	return topics, nil
}

// BuildAnswerMap filters topics to the allowed short titles and maps
// each to the politician's answer value, defaulting missing answers to
// zero. Short-title matching is case-insensitive.
func BuildAnswerMap(topics []CompassTopic, answers []CompassAnswer, allowedShorts []string) ([]CompassTopic, map[string]float64) {
	allowed := make(map[string]struct{}, len(allowedShorts))
	for _, s := range allowedShorts {
		allowed[strings.ToLower(s)] = struct{}{}
	}

	shortByID := make(map[string]string, len(topics))
	out := make(map[string]float64)
	var filtered []CompassTopic

	for _, t := range topics {
		shortByID[t.ID] = t.ShortTitle
		if _, ok := allowed[strings.ToLower(t.ShortTitle)]; ok {
			out[t.ShortTitle] = 0
			filtered = append(filtered, t)
		}
	}

	for _, a := range answers {
		st, ok := shortByID[a.TopicID]
		if !ok {
			continue
		}
		if _, ok := allowed[strings.ToLower(st)]; ok {
			out[st] = a.Value
		}
	}

	return filtered, out
}
