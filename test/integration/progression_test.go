//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/test/integration/testutil"
)

// ─── Quest lifecycle ────────────────────────────────────────────────────────

func TestQuests_RequireAuth(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.GET("/quests")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQuests_ListInitializesProgress(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedQuest("reponses-forum", domain.PeriodWeekly, domain.ActionForumAnswer, 3,
		[]domain.QuestReward{{Type: domain.RewardPoints, Amount: 50}})
	token, _ := env.CreateUser()

	var quests []domain.QuestProgressDetail
	resp := env.AuthGET("/quests?period=weekly", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.DecodeBody(resp, &quests)

	require.Len(t, quests, 1)
	assert.Equal(t, "reponses-forum", quests[0].Slug)
	assert.Equal(t, 0, quests[0].Progress)
	assert.Equal(t, domain.StatusInProgress, quests[0].Status)
}

func TestQuests_ActionAdvancesAndCompletes(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedQuest("reponses-forum", domain.PeriodWeekly, domain.ActionForumAnswer, 2,
		[]domain.QuestReward{{Type: domain.RewardPoints, Amount: 50}})
	token, _ := env.CreateUser()

	for i := 0; i < 2; i++ {
		resp := env.AuthPOST("/actions", map[string]interface{}{"action": "forum_answer"}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	var quests []domain.QuestProgressDetail
	env.DecodeBody(env.AuthGET("/quests?period=weekly", token), &quests)

	require.Len(t, quests, 1)
	assert.Equal(t, 2, quests[0].Progress)
	assert.Equal(t, domain.StatusCompleted, quests[0].Status)
}

func TestQuests_ProgressFreezesAtCompletion(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedQuest("reponses-forum", domain.PeriodWeekly, domain.ActionForumAnswer, 2,
		[]domain.QuestReward{{Type: domain.RewardPoints, Amount: 50}})
	token, _ := env.CreateUser()

	for i := 0; i < 5; i++ {
		resp := env.AuthPOST("/actions", map[string]interface{}{"action": "forum_answer"}, token)
		resp.Body.Close()
	}

	var quests []domain.QuestProgressDetail
	env.DecodeBody(env.AuthGET("/quests?period=weekly", token), &quests)

	require.Len(t, quests, 1)
	assert.Equal(t, 2, quests[0].Progress)
}

func TestQuests_ClaimCreditsPoints(t *testing.T) {
	env := testutil.NewTestEnv(t)
	questID := env.SeedQuest("reponses-forum", domain.PeriodWeekly, domain.ActionForumAnswer, 1,
		[]domain.QuestReward{{Type: domain.RewardPoints, Amount: 50}})
	token, _ := env.CreateUser()

	resp := env.AuthPOST("/actions", map[string]interface{}{"action": "forum_answer"}, token)
	resp.Body.Close()

	resp = env.AuthPOST("/quests/"+questID.String()+"/claim", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var wallet struct {
		Points int `json:"points"`
	}
	env.DecodeBody(env.AuthGET("/wallet", token), &wallet)
	assert.Equal(t, 50, wallet.Points)
}

func TestQuests_ClaimTwiceRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	questID := env.SeedQuest("reponses-forum", domain.PeriodWeekly, domain.ActionForumAnswer, 1,
		[]domain.QuestReward{{Type: domain.RewardPoints, Amount: 50}})
	token, _ := env.CreateUser()

	resp := env.AuthPOST("/actions", map[string]interface{}{"action": "forum_answer"}, token)
	resp.Body.Close()

	resp = env.AuthPOST("/quests/"+questID.String()+"/claim", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.AuthPOST("/quests/"+questID.String()+"/claim", nil, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Balance unchanged by the rejected claim.
	var wallet struct {
		Points int `json:"points"`
	}
	env.DecodeBody(env.AuthGET("/wallet", token), &wallet)
	assert.Equal(t, 50, wallet.Points)
}

func TestQuests_ClaimIncompleteRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	questID := env.SeedQuest("reponses-forum", domain.PeriodWeekly, domain.ActionForumAnswer, 3,
		[]domain.QuestReward{{Type: domain.RewardPoints, Amount: 50}})
	token, _ := env.CreateUser()

	resp := env.AuthPOST("/actions", map[string]interface{}{"action": "forum_answer"}, token)
	resp.Body.Close()

	resp = env.AuthPOST("/quests/"+questID.String()+"/claim", nil, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The rejected claim must not move any balance.
	var wallet struct {
		Points int `json:"points"`
	}
	env.DecodeBody(env.AuthGET("/wallet", token), &wallet)
	assert.Equal(t, 0, wallet.Points)
}

func TestQuests_ChestRewardRolledOnClaim(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedChest(domain.ChestCommon, []domain.ChestEntry{
		{Type: domain.ChestEntryPoints, Amount: 10, Weight: 100},
	})
	questID := env.SeedQuest("quiz-parfait", domain.PeriodDaily, domain.ActionQuizComplete, 1,
		[]domain.QuestReward{{Type: domain.RewardChest, ChestType: domain.ChestCommon}})
	token, _ := env.CreateUser()

	resp := env.AuthPOST("/actions", map[string]interface{}{"action": "quiz_complete"}, token)
	resp.Body.Close()

	resp = env.AuthPOST("/quests/"+questID.String()+"/claim", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The single-entry table pays 10 points, and the roll is audited.
	var wallet struct {
		Points int `json:"points"`
	}
	env.DecodeBody(env.AuthGET("/wallet", token), &wallet)
	assert.Equal(t, 10, wallet.Points)

	var rewards []domain.ChestReward
	env.DecodeBody(env.AuthGET("/chests/rewards", token), &rewards)
	require.Len(t, rewards, 1)
	assert.True(t, rewards[0].Claimed)
}

// ─── Calendar ───────────────────────────────────────────────────────────────

func TestCalendar_ClaimTodayThenDuplicateRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateUser()

	resp := env.AuthPOST("/calendar/claim", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.AuthPOST("/calendar/claim", nil, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestCalendar_ClaimYesterdayRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateUser()

	resp := env.AuthPOST("/calendar/claim", map[string]string{"day": "2020-01-01"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestCalendar_AdminGenerateRequiresAdminRealm(t *testing.T) {
	env := testutil.NewTestEnv(t)
	userToken, _ := env.CreateUser()

	body := map[string]string{"from": "2026-03-01", "to": "2026-03-31"}

	resp := env.AuthPOST("/admin/calendar/generate", body, userToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.AuthPOST("/admin/calendar/generate", body, env.AdminToken())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		DaysGenerated int `json:"days_generated"`
	}
	env.DecodeBody(resp, &result)
	assert.Equal(t, 31, result.DaysGenerated)
}

// ─── Badges ─────────────────────────────────────────────────────────────────

func TestBadges_GrantedOnceAggregateReached(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedBadge("premiere-reponse", domain.CondForumAnswers, 1)
	token, userID := env.CreateUser()

	var granted []domain.Badge
	env.DecodeBody(env.AuthPOST("/badges/evaluate", nil, token), &granted)
	assert.Empty(t, granted)

	_, err := env.Pool.Exec(t.Context(), `
		INSERT INTO forum_answers (id, user_id, status) VALUES (gen_random_uuid(), $1, '')`, userID)
	require.NoError(t, err)

	env.DecodeBody(env.AuthPOST("/badges/evaluate", nil, token), &granted)
	require.Len(t, granted, 1)
	assert.Equal(t, "premiere-reponse", granted[0].Slug)

	// Re-evaluating never grants twice.
	env.DecodeBody(env.AuthPOST("/badges/evaluate", nil, token), &granted)
	assert.Empty(t, granted)
}
