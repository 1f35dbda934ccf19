package trainer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/fitcoach/internal/fitness"
	"github.com/2beens/fitcoach/internal/metabolic"

	log "github.com/sirupsen/logrus"
)

// the AI gateway completer (for dependency injection and testing)
type completer interface {
	Complete(
		ctx context.Context,
		apiKeyOverride string,
		systemPrompt string,
		conversation []fitness.ChatMessage,
	) (string, error)
}

// Service builds the role-specific instruction payload for a plan request,
// performs the single upstream round-trip and normalizes the reply.
// Stateless, no retries: every failure is surfaced typed to the caller.
type Service struct {
	client completer
}

func NewService(client completer) *Service {
	return &Service{
		client: client,
	}
}

// a synthetic turn used when a chat request arrives with no history
var defaultConversation = []fitness.ChatMessage{
	{Role: fitness.ChatRoleUser, Content: "Generate the plan"},
}

func (s *Service) GeneratePlan(ctx context.Context, req PlanRequest) (*GeneratedPlan, error) {
	var systemPrompt string
	switch req.Type {
	case PlanTypeWorkout:
		systemPrompt = workoutSystemPrompt(req.UserProfile)
	case PlanTypeDiet:
		// the energy estimate is recomputed for every diet request,
		// used for the prompt only and discarded afterwards
		estimate := metabolic.Estimate(req.UserProfile)
		log.Debugf("diet plan for [%s]: bmr %.1f, tdee %d, target %d kcal",
			req.UserProfile.Name, estimate.BMR, estimate.TDEE, estimate.TargetCalories)
		systemPrompt = dietSystemPrompt(req.UserProfile, estimate.TargetCalories)
	case PlanTypeChat:
		systemPrompt = chatSystemPrompt(req.UserProfile)
	default:
		return nil, fmt.Errorf("unknown plan request type: %q", req.Type)
	}

	conversation := req.Messages
	if len(conversation) == 0 {
		conversation = defaultConversation
	}

	content, err := s.client.Complete(ctx, req.CustomAPIKey, systemPrompt, conversation)
	if err != nil {
		return nil, err
	}

	if req.Type == PlanTypeChat {
		return &GeneratedPlan{Type: PlanTypeChat, ChatReply: content}, nil
	}

	// workout and diet replies must hold a JSON plan, usually wrapped in
	// prose; prose alone is never passed off as a structured plan
	planJson, err := ExtractJSONObject(content)
	if err != nil {
		log.Tracef("no json object in %s plan reply: %.120s", req.Type, content)
		return nil, fmt.Errorf("%w: %s", ErrMalformedPlan, err)
	}

	switch req.Type {
	case PlanTypeWorkout:
		var plan WorkoutPlan
		if err := json.Unmarshal([]byte(planJson), &plan); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedPlan, err)
		}
		return &GeneratedPlan{Type: PlanTypeWorkout, Workout: &plan}, nil
	default:
		var plan DietPlan
		if err := json.Unmarshal([]byte(planJson), &plan); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedPlan, err)
		}
		return &GeneratedPlan{Type: PlanTypeDiet, Diet: &plan}, nil
	}
}
