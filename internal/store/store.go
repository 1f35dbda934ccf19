// Package store persists the coaching data the web client used to keep in
// browser local storage: user profile, last generated plans, chat history
// and progress entries. One fixed redis key per datum, JSON values.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcoach/internal/fitness"
	"github.com/2beens/fitcoach/internal/trainer"

	"github.com/go-redis/redis/v8"
)

var ErrNotFound = errors.New("not found")

const (
	keyUserProfile = "fitai||user_profile"
	keyWorkoutPlan = "fitai||workout_plan"
	keyDietPlan    = "fitai||diet_plan"
	keyChatHistory = "fitai||chat_history"
	keyProgress    = "fitai||progress"
)

// StoredWorkoutPlan carries the generation timestamp the caller stamped
// upon receiving the plan.
type StoredWorkoutPlan struct {
	trainer.WorkoutPlan
	GeneratedAt time.Time `json:"generatedAt"`
}

type StoredDietPlan struct {
	trainer.DietPlan
	GeneratedAt time.Time `json:"generatedAt"`
}

type StoredChatMessage struct {
	ID        string           `json:"id"`
	Role      fitness.ChatRole `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
}

type Store struct {
	redisClient *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func (s *Store) SaveProfile(ctx context.Context, profile fitness.UserProfile) error {
	return s.setJson(ctx, keyUserProfile, profile)
}

func (s *Store) GetProfile(ctx context.Context) (*fitness.UserProfile, error) {
	var profile fitness.UserProfile
	if err := s.getJson(ctx, keyUserProfile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) SaveWorkoutPlan(ctx context.Context, plan StoredWorkoutPlan) error {
	return s.setJson(ctx, keyWorkoutPlan, plan)
}

func (s *Store) GetWorkoutPlan(ctx context.Context) (*StoredWorkoutPlan, error) {
	var plan StoredWorkoutPlan
	if err := s.getJson(ctx, keyWorkoutPlan, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Store) SaveDietPlan(ctx context.Context, plan StoredDietPlan) error {
	return s.setJson(ctx, keyDietPlan, plan)
}

func (s *Store) GetDietPlan(ctx context.Context) (*StoredDietPlan, error) {
	var plan StoredDietPlan
	if err := s.getJson(ctx, keyDietPlan, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Store) AppendChatMessage(ctx context.Context, message StoredChatMessage) error {
	return s.appendJson(ctx, keyChatHistory, message)
}

func (s *Store) ChatHistory(ctx context.Context) ([]StoredChatMessage, error) {
	messagesJson, err := s.redisClient.LRange(ctx, keyChatHistory, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", keyChatHistory, err)
	}

	messages := make([]StoredChatMessage, 0, len(messagesJson))
	for _, mJson := range messagesJson {
		var m StoredChatMessage
		if err := json.Unmarshal([]byte(mJson), &m); err != nil {
			return nil, fmt.Errorf("unmarshal chat message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (s *Store) ClearChatHistory(ctx context.Context) error {
	if err := s.redisClient.Del(ctx, keyChatHistory).Err(); err != nil {
		return fmt.Errorf("del %s: %w", keyChatHistory, err)
	}
	return nil
}

func (s *Store) AddProgressEntry(ctx context.Context, entry fitness.ProgressEntry) error {
	return s.appendJson(ctx, keyProgress, entry)
}

func (s *Store) ProgressEntries(ctx context.Context) ([]fitness.ProgressEntry, error) {
	entriesJson, err := s.redisClient.LRange(ctx, keyProgress, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", keyProgress, err)
	}

	entries := make([]fitness.ProgressEntry, 0, len(entriesJson))
	for _, eJson := range entriesJson {
		var e fitness.ProgressEntry
		if err := json.Unmarshal([]byte(eJson), &e); err != nil {
			return nil, fmt.Errorf("unmarshal progress entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// ClearAll wipes every stored datum: profile, plans, chat and progress.
func (s *Store) ClearAll(ctx context.Context) error {
	err := s.redisClient.Del(ctx,
		keyUserProfile,
		keyWorkoutPlan,
		keyDietPlan,
		keyChatHistory,
		keyProgress,
	).Err()
	if err != nil {
		return fmt.Errorf("del all data keys: %w", err)
	}
	return nil
}

func (s *Store) setJson(ctx context.Context, key string, value any) error {
	valueJson, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.redisClient.Set(ctx, key, valueJson, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) getJson(ctx context.Context, key string, dest any) error {
	valueJson, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(valueJson), dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *Store) appendJson(ctx context.Context, key string, value any) error {
	valueJson, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.redisClient.RPush(ctx, key, valueJson).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}
