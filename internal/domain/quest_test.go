package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodType(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "monthly"} {
		pt, err := ParsePeriodType(s)
		require.NoError(t, err)
		assert.Equal(t, PeriodType(s), pt)
	}

	_, err := ParsePeriodType("hourly")
	require.Error(t, err)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestParseActionType(t *testing.T) {
	a, err := ParseActionType("quiz_complete")
	require.NoError(t, err)
	assert.Equal(t, ActionQuizComplete, a)

	_, err = ParseActionType("login")
	assert.Error(t, err)
}

func TestQuestValidAt(t *testing.T) {
	now := time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	assert.True(t, Quest{}.ValidAt(now))
	assert.True(t, Quest{StartsAt: &before, EndsAt: &after}.ValidAt(now))
	assert.False(t, Quest{StartsAt: &after}.ValidAt(now))
	assert.False(t, Quest{EndsAt: &before}.ValidAt(now))
}

func TestQuestValidForPeriod(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	midWeek := start.AddDate(0, 0, 3)
	beforeWeek := start.AddDate(0, 0, -2)
	afterWeek := end.AddDate(0, 0, 2)

	assert.True(t, Quest{}.ValidForPeriod(start, end))
	assert.True(t, Quest{StartsAt: &midWeek}.ValidForPeriod(start, end))
	assert.True(t, Quest{EndsAt: &midWeek}.ValidForPeriod(start, end))
	assert.False(t, Quest{StartsAt: &afterWeek}.ValidForPeriod(start, end))
	assert.False(t, Quest{EndsAt: &beforeWeek}.ValidForPeriod(start, end))
}

func TestAcceptsActionRejectsOtherActions(t *testing.T) {
	q := Quest{Condition: QuestCondition{Action: ActionForumAnswer, Target: 3}}

	assert.True(t, q.AcceptsAction(ActionForumAnswer, ActionMetadata{}))
	assert.False(t, q.AcceptsAction(ActionQuizComplete, ActionMetadata{}))
}

func TestAcceptsActionQuizScoreThreshold(t *testing.T) {
	q := Quest{Condition: QuestCondition{
		Action:   ActionQuizScore,
		Target:   1,
		Metadata: &ConditionMetadata{MinScore: 80},
	}}

	assert.False(t, q.AcceptsAction(ActionQuizScore, ActionMetadata{Score: 79}))
	assert.True(t, q.AcceptsAction(ActionQuizScore, ActionMetadata{Score: 80}))
	assert.True(t, q.AcceptsAction(ActionQuizScore, ActionMetadata{Score: 100}))
}

func TestAcceptsActionSubjectScope(t *testing.T) {
	q := Quest{Condition: QuestCondition{
		Action:   ActionFicheCreate,
		Target:   2,
		Metadata: &ConditionMetadata{Subject: "maths"},
	}}

	assert.True(t, q.AcceptsAction(ActionFicheCreate, ActionMetadata{Subject: "maths"}))
	assert.False(t, q.AcceptsAction(ActionFicheCreate, ActionMetadata{Subject: "physique"}))
	assert.False(t, q.AcceptsAction(ActionFicheCreate, ActionMetadata{}))

	// An unscoped fiche quest counts any subject.
	open := Quest{Condition: QuestCondition{Action: ActionFicheCreate, Target: 2, Metadata: &ConditionMetadata{}}}
	assert.True(t, open.AcceptsAction(ActionFicheCreate, ActionMetadata{Subject: "histoire"}))
}

func TestValidateQuest(t *testing.T) {
	valid := Quest{
		Slug:      "reponses-forum",
		Condition: QuestCondition{Action: ActionForumAnswer, Target: 3},
		Rewards:   []QuestReward{{Type: RewardPoints, Amount: 50}},
	}
	assert.NoError(t, ValidateQuest(valid))

	cases := []struct {
		name  string
		quest Quest
	}{
		{"no rewards", Quest{Slug: "q", Condition: QuestCondition{Target: 1}}},
		{"zero target", Quest{Slug: "q", Condition: QuestCondition{Target: 0}, Rewards: []QuestReward{{Type: RewardPoints, Amount: 10}}}},
		{"zero point reward", Quest{Slug: "q", Condition: QuestCondition{Target: 1}, Rewards: []QuestReward{{Type: RewardPoints}}}},
		{"chest without type", Quest{Slug: "q", Condition: QuestCondition{Target: 1}, Rewards: []QuestReward{{Type: RewardChest}}}},
		{"unknown reward type", Quest{Slug: "q", Condition: QuestCondition{Target: 1}, Rewards: []QuestReward{{Type: "xp", Amount: 5}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuest(tc.quest)
			require.Error(t, err)
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "CONFIGURATION_ERROR", appErr.Code)
		})
	}
}

func TestValidatePositiveAmount(t *testing.T) {
	assert.NoError(t, ValidatePositiveAmount(1))
	assert.Error(t, ValidatePositiveAmount(0))
	assert.Error(t, ValidatePositiveAmount(-5))
}
