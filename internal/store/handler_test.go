package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcoach/internal/fitness"
)

func handlerTestSetup(t *testing.T) (*mux.Router, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	handler := NewHandler(NewStore(db))
	r := mux.NewRouter()
	handler.SetupRoutes(r)
	return r, mock
}

func TestHandler_Profile_RoundTrip(t *testing.T) {
	r, mock := handlerTestSetup(t)

	profile := storeTestProfile()
	profileJson, err := json.Marshal(profile)
	require.NoError(t, err)

	mock.ExpectSet(keyUserProfile, profileJson, 0).SetVal("OK")

	req := httptest.NewRequest("PUT", "/user/profile", bytes.NewReader(profileJson))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "saved", rr.Body.String())

	mock.ExpectGet(keyUserProfile).SetVal(string(profileJson))
	req = httptest.NewRequest("GET", "/user/profile", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var gotProfile fitness.UserProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &gotProfile))
	assert.Equal(t, profile, gotProfile)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Profile_NotFound(t *testing.T) {
	r, mock := handlerTestSetup(t)

	mock.ExpectGet(keyUserProfile).RedisNil()
	req := httptest.NewRequest("GET", "/user/profile", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_SaveProfile_Invalid(t *testing.T) {
	r, _ := handlerTestSetup(t)

	profile := storeTestProfile()
	profile.Weight = -5
	profileJson, err := json.Marshal(profile)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/user/profile", bytes.NewReader(profileJson))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("PUT", "/user/profile", bytes.NewReader([]byte("{invalid")))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_SaveWorkoutPlan_StampsGeneratedAt(t *testing.T) {
	r, mock := handlerTestSetup(t)

	// no generatedAt in the payload, the handler stamps it before storing
	planJson := []byte(`{"weeklyPlan":[{"day":"Monday","focus":"Push","duration":"45 mins","exercises":[]}],"tips":["warm up"]}`)
	mock.CustomMatch(func(expected, actual []interface{}) error {
		require.Len(t, actual, 3)
		var stored StoredWorkoutPlan
		require.NoError(t, json.Unmarshal(actual[2].([]byte), &stored))
		assert.False(t, stored.GeneratedAt.IsZero())
		assert.Equal(t, "Monday", stored.WeeklyPlan[0].Day)
		return nil
	}).ExpectSet(keyWorkoutPlan, planJson, 0).SetVal("OK")

	req := httptest.NewRequest("PUT", "/plans/workout", bytes.NewReader(planJson))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "saved", rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_GetDietPlan(t *testing.T) {
	r, mock := handlerTestSetup(t)

	plan := StoredDietPlan{
		GeneratedAt: time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC),
	}
	plan.DailyPlan.TargetCalories = 2091
	planJson, err := json.Marshal(plan)
	require.NoError(t, err)

	mock.ExpectGet(keyDietPlan).SetVal(string(planJson))
	req := httptest.NewRequest("GET", "/plans/diet", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var gotPlan StoredDietPlan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &gotPlan))
	assert.Equal(t, 2091, gotPlan.DailyPlan.TargetCalories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_ChatHistory(t *testing.T) {
	r, mock := handlerTestSetup(t)

	message := StoredChatMessage{
		ID:        "msg-1",
		Role:      fitness.ChatRoleUser,
		Content:   "hello coach",
		Timestamp: time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC),
	}
	messageJson, err := json.Marshal(message)
	require.NoError(t, err)

	mock.ExpectRPush(keyChatHistory, messageJson).SetVal(1)
	req := httptest.NewRequest("POST", "/chat/history", bytes.NewReader(messageJson))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, fmt.Sprintf("added:%s", message.ID), rr.Body.String())

	mock.ExpectLRange(keyChatHistory, 0, -1).SetVal([]string{string(messageJson)})
	req = httptest.NewRequest("GET", "/chat/history", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp struct {
		Messages []StoredChatMessage `json:"messages"`
		Total    int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Total)
	require.Len(t, listResp.Messages, 1)
	assert.Equal(t, message, listResp.Messages[0])

	mock.ExpectDel(keyChatHistory).SetVal(1)
	req = httptest.NewRequest("DELETE", "/chat/history", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cleared", rr.Body.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_AppendChatMessage_Invalid(t *testing.T) {
	r, _ := handlerTestSetup(t)

	for name, body := range map[string]string{
		"empty content": `{"role":"user","content":""}`,
		"unknown role":  `{"role":"overlord","content":"do squats"}`,
		"invalid json":  `{invalid`,
	} {
		req := httptest.NewRequest("POST", "/chat/history", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, name)
	}
}

func TestHandler_Progress(t *testing.T) {
	r, mock := handlerTestSetup(t)

	weight := 70.2
	workouts := 3
	entry := fitness.ProgressEntry{
		Date:              time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Weight:            &weight,
		WorkoutsCompleted: &workouts,
		Notes:             "new squat PR",
	}
	entryJson, err := json.Marshal(entry)
	require.NoError(t, err)

	mock.ExpectRPush(keyProgress, entryJson).SetVal(1)
	req := httptest.NewRequest("POST", "/progress", bytes.NewReader(entryJson))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "added", rr.Body.String())

	mock.ExpectLRange(keyProgress, 0, -1).SetVal([]string{string(entryJson)})
	req = httptest.NewRequest("GET", "/progress", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp struct {
		Entries []fitness.ProgressEntry `json:"entries"`
		Total   int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Total)
	require.Len(t, listResp.Entries, 1)
	assert.Equal(t, entry, listResp.Entries[0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_ClearAll(t *testing.T) {
	r, mock := handlerTestSetup(t)

	mock.ExpectDel(
		keyUserProfile,
		keyWorkoutPlan,
		keyDietPlan,
		keyChatHistory,
		keyProgress,
	).SetVal(5)
	req := httptest.NewRequest("DELETE", "/user/data", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cleared", rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
