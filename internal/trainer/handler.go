package trainer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitcoach/internal/fitness"
	"github.com/2beens/fitcoach/internal/metabolic"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/pkg"

	log "github.com/sirupsen/logrus"
)

type planGenerator interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (*GeneratedPlan, error)
}

type Handler struct {
	service planGenerator
	instr   *metrics.Manager
}

func NewHandler(service planGenerator, instr *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

type chatReplyResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleGenerate serves plan requests: workout, diet and chat.
func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var planReq PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&planReq); err != nil {
		log.Tracef("generate plan, unmarshal json params: %s", err)
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	switch planReq.Type {
	case PlanTypeWorkout, PlanTypeDiet, PlanTypeChat:
	default:
		writeError(w, fmt.Sprintf("unknown plan type: %q", planReq.Type), http.StatusBadRequest)
		return
	}

	if err := planReq.UserProfile.Validate(); err != nil {
		writeError(w, fmt.Sprintf("invalid user profile: %s", err), http.StatusBadRequest)
		return
	}

	startedAt := time.Now()
	plan, err := handler.service.GeneratePlan(r.Context(), planReq)
	handler.instr.HistPlanGenDuration.Observe(time.Since(startedAt).Seconds())
	if err != nil {
		handler.writePlanError(w, planReq.Type, err)
		return
	}

	handler.instr.CounterPlansGenerated.WithLabelValues(string(plan.Type)).Inc()

	var payload any
	switch plan.Type {
	case PlanTypeWorkout:
		payload = plan.Workout
	case PlanTypeDiet:
		payload = plan.Diet
	default:
		payload = chatReplyResponse{Response: plan.ChatReply}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("marshal generated %s plan: %s", plan.Type, err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, payloadBytes)
}

// HandleEnergyEstimate exposes the calorie pipeline so the client can show
// target calories without generating a whole diet plan.
func (handler *Handler) HandleEnergyEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var profile fitness.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := profile.Validate(); err != nil {
		writeError(w, fmt.Sprintf("invalid user profile: %s", err), http.StatusBadRequest)
		return
	}

	estimate := metabolic.Estimate(profile)
	estimateJson, err := json.Marshal(estimate)
	if err != nil {
		log.Errorf("marshal energy estimate: %s", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, estimateJson)
}

func (handler *Handler) writePlanError(w http.ResponseWriter, planType PlanType, err error) {
	var upstreamErr *UpstreamError

	switch {
	case errors.Is(err, ErrRateLimited):
		handler.instr.CounterPlanErrors.WithLabelValues("rate_limited").Inc()
		writeError(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	case errors.Is(err, ErrQuotaExceeded):
		handler.instr.CounterPlanErrors.WithLabelValues("quota_exceeded").Inc()
		writeError(w, "Usage limit reached. Please add credits.", http.StatusPaymentRequired)
	case errors.Is(err, ErrNoAPIKey):
		handler.instr.CounterPlanErrors.WithLabelValues("no_api_key").Inc()
		log.Errorf("generate %s plan: %s", planType, err)
		writeError(w, "ai gateway credential not configured", http.StatusServiceUnavailable)
	case errors.Is(err, ErrMalformedPlan), errors.Is(err, ErrEmptyResponse):
		handler.instr.CounterPlanErrors.WithLabelValues("malformed_plan").Inc()
		log.Errorf("generate %s plan: %s", planType, err)
		writeError(w, "ai response could not be read as a plan", http.StatusBadGateway)
	case errors.As(err, &upstreamErr):
		handler.instr.CounterPlanErrors.WithLabelValues("upstream").Inc()
		log.Errorf("generate %s plan, ai gateway status %d: %s", planType, upstreamErr.StatusCode, upstreamErr.Detail)
		writeError(w, fmt.Sprintf("ai gateway error: %d", upstreamErr.StatusCode), http.StatusBadGateway)
	default:
		handler.instr.CounterPlanErrors.WithLabelValues("internal").Inc()
		log.Errorf("generate %s plan: %s", planType, err)
		writeError(w, "failed to generate plan", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	errJson, err := json.Marshal(errorResponse{Error: message})
	if err != nil {
		http.Error(w, message, statusCode)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, errJson, statusCode)
}
