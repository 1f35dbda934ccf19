package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitcoach/internal/fitness"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/user/profile", handler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/user/profile", handler.HandleSaveProfile).Methods("PUT", "OPTIONS").Name("save-profile")
	r.HandleFunc("/plans/workout", handler.HandleGetWorkoutPlan).Methods("GET", "OPTIONS").Name("get-workout-plan")
	r.HandleFunc("/plans/workout", handler.HandleSaveWorkoutPlan).Methods("PUT", "OPTIONS").Name("save-workout-plan")
	r.HandleFunc("/plans/diet", handler.HandleGetDietPlan).Methods("GET", "OPTIONS").Name("get-diet-plan")
	r.HandleFunc("/plans/diet", handler.HandleSaveDietPlan).Methods("PUT", "OPTIONS").Name("save-diet-plan")
	r.HandleFunc("/chat/history", handler.HandleChatHistory).Methods("GET", "OPTIONS").Name("chat-history")
	r.HandleFunc("/chat/history", handler.HandleAppendChatMessage).Methods("POST", "OPTIONS").Name("append-chat-message")
	r.HandleFunc("/chat/history", handler.HandleClearChatHistory).Methods("DELETE", "OPTIONS").Name("clear-chat-history")
	r.HandleFunc("/progress", handler.HandleProgressEntries).Methods("GET", "OPTIONS").Name("progress-entries")
	r.HandleFunc("/progress", handler.HandleAddProgressEntry).Methods("POST", "OPTIONS").Name("add-progress-entry")
	r.HandleFunc("/user/data", handler.HandleClearAll).Methods("DELETE", "OPTIONS").Name("clear-all-data")
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := handler.store.GetProfile(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, profile)
}

func (handler *Handler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var profile fitness.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}

	if err := profile.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("invalid profile: %s", err), http.StatusBadRequest)
		return
	}

	if err := handler.store.SaveProfile(r.Context(), profile); err != nil {
		log.Errorf("save profile for [%s]: %s", profile.Name, err)
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	log.Tracef("profile saved for: %s", profile.Name)
	pkg.WriteResponse(w, "", "saved", http.StatusOK)
}

func (handler *Handler) HandleGetWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := handler.store.GetWorkoutPlan(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "workout plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout plan: %s", err)
		http.Error(w, "failed to get workout plan", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, plan)
}

func (handler *Handler) HandleSaveWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var plan StoredWorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "invalid workout plan", http.StatusBadRequest)
		return
	}

	// the client stamps generatedAt upon plan receipt; stamp here only
	// if it chose not to
	if plan.GeneratedAt.IsZero() {
		plan.GeneratedAt = time.Now()
	}

	if err := handler.store.SaveWorkoutPlan(r.Context(), plan); err != nil {
		log.Errorf("save workout plan: %s", err)
		http.Error(w, "failed to save workout plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", "saved", http.StatusOK)
}

func (handler *Handler) HandleGetDietPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := handler.store.GetDietPlan(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "diet plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("get diet plan: %s", err)
		http.Error(w, "failed to get diet plan", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, plan)
}

func (handler *Handler) HandleSaveDietPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var plan StoredDietPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "invalid diet plan", http.StatusBadRequest)
		return
	}

	if plan.GeneratedAt.IsZero() {
		plan.GeneratedAt = time.Now()
	}

	if err := handler.store.SaveDietPlan(r.Context(), plan); err != nil {
		log.Errorf("save diet plan: %s", err)
		http.Error(w, "failed to save diet plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", "saved", http.StatusOK)
}

func (handler *Handler) HandleChatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := handler.store.ChatHistory(r.Context())
	if err != nil {
		log.Errorf("get chat history: %s", err)
		http.Error(w, "failed to get chat history", http.StatusInternalServerError)
		return
	}

	messagesJson, err := json.Marshal(messages)
	if err != nil {
		log.Errorf("marshal chat history: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resJson := fmt.Sprintf(`{"messages": %s, "total": %d}`, messagesJson, len(messages))
	pkg.WriteJSONResponseOK(w, resJson)
}

func (handler *Handler) HandleAppendChatMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var message StoredChatMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		http.Error(w, "invalid chat message", http.StatusBadRequest)
		return
	}

	if message.Content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}
	switch message.Role {
	case fitness.ChatRoleUser, fitness.ChatRoleAssistant:
	default:
		http.Error(w, "error, unknown role", http.StatusBadRequest)
		return
	}

	if message.ID == "" {
		id, err := pkg.GenerateRandomString(12)
		if err != nil {
			log.Errorf("generate chat message id: %s", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		message.ID = id
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	if err := handler.store.AppendChatMessage(r.Context(), message); err != nil {
		log.Errorf("append chat message: %s", err)
		http.Error(w, "failed to store chat message", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("added:%s", message.ID), http.StatusOK)
}

func (handler *Handler) HandleClearChatHistory(w http.ResponseWriter, r *http.Request) {
	if err := handler.store.ClearChatHistory(r.Context()); err != nil {
		log.Errorf("clear chat history: %s", err)
		http.Error(w, "failed to clear chat history", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", "cleared", http.StatusOK)
}

func (handler *Handler) HandleProgressEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := handler.store.ProgressEntries(r.Context())
	if err != nil {
		log.Errorf("get progress entries: %s", err)
		http.Error(w, "failed to get progress entries", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal progress entries: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resJson := fmt.Sprintf(`{"entries": %s, "total": %d}`, entriesJson, len(entries))
	pkg.WriteJSONResponseOK(w, resJson)
}

func (handler *Handler) HandleAddProgressEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var entry fitness.ProgressEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid progress entry", http.StatusBadRequest)
		return
	}

	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	if err := handler.store.AddProgressEntry(r.Context(), entry); err != nil {
		log.Errorf("add progress entry: %s", err)
		http.Error(w, "failed to store progress entry", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", "added", http.StatusOK)
}

func (handler *Handler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := handler.store.ClearAll(r.Context()); err != nil {
		log.Errorf("clear all user data: %s", err)
		http.Error(w, "failed to clear user data", http.StatusInternalServerError)
		return
	}

	log.Warnln("all stored user data cleared")
	pkg.WriteResponse(w, "", "cleared", http.StatusOK)
}

func (handler *Handler) writeJson(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, valueJson)
}
