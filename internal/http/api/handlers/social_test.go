package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basakrdnz/vibevault/internal/db"
	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/basakrdnz/vibevault/internal/social"
)

var testDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq)
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		t.Fatalf("expected open to succeed, got %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("expected migrate to succeed, got %v", errMigrate)
	}
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, email, name string) models.User {
	t.Helper()
	user := models.User{ID: uuid.NewString(), Email: email, Password: "hash", Name: name}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("expected user seed to succeed, got %v", errCreate)
	}
	return user
}

// asUser returns middleware that injects a fixed caller identity.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func setupSocialRouter(conn *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSocialHandler(social.NewService(conn, nil))
	r := gin.New()
	r.Use(asUser(userID))
	r.POST("/social/request", handler.SendRequest)
	r.POST("/social/respond", handler.Respond)
	r.GET("/social/friends", handler.Friends)
	r.GET("/social/requests", handler.Requests)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	parsed := map[string]any{}
	if rec.Body.Len() > 0 {
		if errDecode := json.Unmarshal(rec.Body.Bytes(), &parsed); errDecode != nil {
			t.Fatalf("expected json body, got %q", rec.Body.String())
		}
	}
	return rec, parsed
}

func TestSendRequest_StatusMapping(t *testing.T) {
	conn := openTestDB(t)
	alice := seedUser(t, conn, "alice@example.com", "Alice")
	seedUser(t, conn, "bob@example.com", "Bob")
	router := setupSocialRouter(conn, alice.ID)

	rec, body := doJSON(t, router, http.MethodPost, "/social/request", `{"email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body["status"] != "pending" {
		t.Fatalf("expected pending status, got %v", body["status"])
	}
	if body["id"] == "" {
		t.Fatal("expected a request id in the response")
	}

	rec, body = doJSON(t, router, http.MethodPost, "/social/request", `{"email":"bob@example.com"}`)
	if rec.Code != http.StatusConflict || body["error"] != "RequestAlreadyExists" {
		t.Fatalf("expected 409 RequestAlreadyExists, got %d %v", rec.Code, body["error"])
	}

	rec, body = doJSON(t, router, http.MethodPost, "/social/request", `{"email":"alice@example.com"}`)
	if rec.Code != http.StatusBadRequest || body["error"] != "CannotFriendSelf" {
		t.Fatalf("expected 400 CannotFriendSelf, got %d %v", rec.Code, body["error"])
	}

	rec, body = doJSON(t, router, http.MethodPost, "/social/request", `{"email":"ghost@example.com"}`)
	if rec.Code != http.StatusNotFound || body["error"] != "UserNotFound" {
		t.Fatalf("expected 404 UserNotFound, got %d %v", rec.Code, body["error"])
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/social/request", `{"email":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", rec.Code)
	}
}

func TestRespond_AcceptFlow(t *testing.T) {
	conn := openTestDB(t)
	alice := seedUser(t, conn, "alice@example.com", "Alice")
	bob := seedUser(t, conn, "bob@example.com", "Bob")

	aliceRouter := setupSocialRouter(conn, alice.ID)
	bobRouter := setupSocialRouter(conn, bob.ID)

	rec, body := doJSON(t, aliceRouter, http.MethodPost, "/social/request", `{"email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	requestID, _ := body["id"].(string)

	rec, body = doJSON(t, bobRouter, http.MethodPost, "/social/respond",
		fmt.Sprintf(`{"requestId":%q,"action":"accept"}`, requestID))
	if rec.Code != http.StatusOK || body["status"] != "accepted" {
		t.Fatalf("expected 200 accepted, got %d %v", rec.Code, body)
	}

	rec, body = doJSON(t, bobRouter, http.MethodPost, "/social/respond",
		fmt.Sprintf(`{"requestId":%q,"action":"accept"}`, requestID))
	if rec.Code != http.StatusConflict || body["error"] != "RequestAlreadyHandled" {
		t.Fatalf("expected 409 RequestAlreadyHandled, got %d %v", rec.Code, body["error"])
	}

	rec, body = doJSON(t, aliceRouter, http.MethodGet, "/social/friends", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	friends, _ := body["friends"].([]any)
	if len(friends) != 1 {
		t.Fatalf("expected one friend, got %v", body["friends"])
	}

	rec, body = doJSON(t, aliceRouter, http.MethodPost, "/social/request", `{"email":"bob@example.com"}`)
	if rec.Code != http.StatusConflict || body["error"] != "AlreadyFriends" {
		t.Fatalf("expected 409 AlreadyFriends, got %d %v", rec.Code, body["error"])
	}
}

func TestRespond_NotFoundAndInvalidAction(t *testing.T) {
	conn := openTestDB(t)
	alice := seedUser(t, conn, "alice@example.com", "Alice")
	bob := seedUser(t, conn, "bob@example.com", "Bob")

	aliceRouter := setupSocialRouter(conn, alice.ID)
	bobRouter := setupSocialRouter(conn, bob.ID)

	rec, body := doJSON(t, bobRouter, http.MethodPost, "/social/respond",
		fmt.Sprintf(`{"requestId":%q,"action":"accept"}`, uuid.NewString()))
	if rec.Code != http.StatusNotFound || body["error"] != "RequestNotFound" {
		t.Fatalf("expected 404 RequestNotFound, got %d %v", rec.Code, body["error"])
	}

	rec, reqBody := doJSON(t, aliceRouter, http.MethodPost, "/social/request", `{"email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	requestID, _ := reqBody["id"].(string)

	// A request answered by someone other than its receiver reads as missing.
	rec, body = doJSON(t, aliceRouter, http.MethodPost, "/social/respond",
		fmt.Sprintf(`{"requestId":%q,"action":"accept"}`, requestID))
	if rec.Code != http.StatusNotFound || body["error"] != "RequestNotFound" {
		t.Fatalf("expected 404 RequestNotFound, got %d %v", rec.Code, body["error"])
	}

	rec, body = doJSON(t, bobRouter, http.MethodPost, "/social/respond",
		fmt.Sprintf(`{"requestId":%q,"action":"block"}`, requestID))
	if rec.Code != http.StatusBadRequest || body["error"] != "InvalidAction" {
		t.Fatalf("expected 400 InvalidAction, got %d %v", rec.Code, body["error"])
	}
}

func TestRequests_BothDirections(t *testing.T) {
	conn := openTestDB(t)
	alice := seedUser(t, conn, "alice@example.com", "Alice")
	bob := seedUser(t, conn, "bob@example.com", "Bob")

	aliceRouter := setupSocialRouter(conn, alice.ID)
	bobRouter := setupSocialRouter(conn, bob.ID)

	rec, _ := doJSON(t, aliceRouter, http.MethodPost, "/social/request", `{"email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec, body := doJSON(t, bobRouter, http.MethodGet, "/social/requests", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	incoming, _ := body["incoming"].([]any)
	if len(incoming) != 1 {
		t.Fatalf("expected one incoming request, got %v", body["incoming"])
	}
	first, _ := incoming[0].(map[string]any)
	sender, _ := first["user"].(map[string]any)
	if sender["email"] != "alice@example.com" {
		t.Fatalf("expected sender summary, got %v", first["user"])
	}

	rec, body = doJSON(t, aliceRouter, http.MethodGet, "/social/requests", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	outgoing, _ := body["outgoing"].([]any)
	if len(outgoing) != 1 {
		t.Fatalf("expected one outgoing request, got %v", body["outgoing"])
	}
}
