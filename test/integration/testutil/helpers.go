//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/revisia/progression/internal/auth"
	"github.com/revisia/progression/internal/domain"
)

// CreateUser inserts a user row and mints a user-realm token for it.
func (env *TestEnv) CreateUser() (token string, userID uuid.UUID) {
	env.t.Helper()
	userID = uuid.New()

	_, err := env.Pool.Exec(context.Background(),
		`INSERT INTO users (id, points, created_at) VALUES ($1, 0, $2)`,
		userID, time.Now().AddDate(-2, 0, 0))
	if err != nil {
		env.t.Fatalf("CreateUser: %v", err)
	}

	token, err = env.JWTMgr.GenerateToken(auth.RealmUser, userID, "eleve@test.fr", "")
	if err != nil {
		env.t.Fatalf("CreateUser: token: %v", err)
	}
	return token, userID
}

// AdminToken mints an admin-realm token.
func (env *TestEnv) AdminToken() string {
	env.t.Helper()
	token, err := env.JWTMgr.GenerateToken(auth.RealmAdmin, uuid.New(), "admin@test.fr", "admin")
	if err != nil {
		env.t.Fatalf("AdminToken: %v", err)
	}
	return token
}

// SeedQuest inserts a quest catalog entry and returns its ID.
func (env *TestEnv) SeedQuest(slug string, pt domain.PeriodType, action domain.ActionType, target int, rewards []domain.QuestReward) uuid.UUID {
	env.t.Helper()
	id := uuid.New()
	rewardsJSON, _ := json.Marshal(rewards)

	_, err := env.Pool.Exec(context.Background(), `
		INSERT INTO quests (id, slug, name, type, condition_action, condition_target, rewards, is_active, created_at)
		VALUES ($1, $2, $2, $3, $4, $5, $6, true, now())`,
		id, slug, string(pt), string(action), target, rewardsJSON)
	if err != nil {
		env.t.Fatalf("SeedQuest %s: %v", slug, err)
	}
	return id
}

// SeedChest inserts an active chest with the given lottery table.
func (env *TestEnv) SeedChest(ct domain.ChestType, entries []domain.ChestEntry) uuid.UUID {
	env.t.Helper()
	id := uuid.New()
	entriesJSON, _ := json.Marshal(entries)

	_, err := env.Pool.Exec(context.Background(),
		`INSERT INTO chests (id, type, entries, is_active) VALUES ($1, $2, $3, true)`,
		id, string(ct), entriesJSON)
	if err != nil {
		env.t.Fatalf("SeedChest %s: %v", ct, err)
	}
	return id
}

// SeedBadge inserts a badge catalog entry.
func (env *TestEnv) SeedBadge(slug string, ct domain.BadgeConditionType, value float64) {
	env.t.Helper()
	_, err := env.Pool.Exec(context.Background(), `
		INSERT INTO badges (id, slug, name, condition_type, condition_value, category, rarity)
		VALUES ($1, $2, $2, $3, $4, 'test', 'common')`,
		uuid.New(), slug, string(ct), value)
	if err != nil {
		env.t.Fatalf("SeedBadge %s: %v", slug, err)
	}
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("AuthGET %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthGET %s: %v", path, err)
	}
	return resp
}

// AuthPOST performs an authenticated POST request with a JSON body.
func (env *TestEnv) AuthPOST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("AuthPOST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("AuthPOST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthPOST %s: %v", path, err)
	}
	return resp
}

// DecodeBody decodes a JSON response body into dst and closes it.
func (env *TestEnv) DecodeBody(resp *http.Response, dst interface{}) {
	env.t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		env.t.Fatalf("decode response: %v", err)
	}
}
