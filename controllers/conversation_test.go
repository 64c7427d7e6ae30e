package controllers

import (
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"Lexipic/models"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
)

func TestResolveOrCreateIdempotent(t *testing.T) {
	db := openTestDB(t)
	a := createTestUser(t, db, "a@example.com", "Ana")
	b := createTestUser(t, db, "b@example.com", "Beto")

	first, err := resolveOrCreate(db, a.ID, b.ID)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolveOrCreate(db, a.ID, b.ID)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	reversed, err := resolveOrCreate(db, b.ID, a.ID)
	if err != nil {
		t.Fatalf("reversed resolve: %v", err)
	}

	if first.ID != second.ID || first.ID != reversed.ID {
		t.Fatalf("expected one canonical conversation, got ids %d %d %d",
			first.ID, second.ID, reversed.ID)
	}

	var count int64
	db.Model(&models.Conversation{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 conversation row, got %d", count)
	}
}

func TestResolveOrCreateConcurrentRace(t *testing.T) {
	db := openTestDB(t)
	a := createTestUser(t, db, "a@example.com", "Ana")
	b := createTestUser(t, db, "b@example.com", "Beto")

	// single pooled connection keeps sqlite happy under concurrent writes
	// while the goroutines still interleave find and create freely
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	const racers = 8
	ids := make([]uint, racers)
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// mix argument order so normalization is raced too
			ua, ub := a.ID, b.ID
			if i%2 == 1 {
				ua, ub = b.ID, a.ID
			}
			conv, err := resolveOrCreate(db, ua, ub)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = conv.ID
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("racer %d: %v", i, err)
		}
	}
	for i := 1; i < racers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("racer %d got conversation %d, racer 0 got %d", i, ids[i], ids[0])
		}
	}

	var count int64
	db.Model(&models.Conversation{}).Count(&count)
	if count != 1 {
		t.Fatalf("concurrent resolves must leave exactly 1 row, got %d", count)
	}
}

func TestResolveConversationValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	me := createTestUser(t, db, "me@example.com", "Yo")

	r := gin.New()
	r.POST("/api/conversations", fakeAuth(me.ID), ResolveConversation(db))

	// missing otherUserId
	w, body := doJSON(t, r, http.MethodPost, "/api/conversations", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing otherUserId, got %d", w.Code)
	}
	if ok, _ := body["ok"].(bool); ok {
		t.Fatal("expected ok=false")
	}

	// self conversation
	w, _ = doJSON(t, r, http.MethodPost, "/api/conversations", map[string]any{"otherUserId": me.ID})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for self conversation, got %d", w.Code)
	}

	// unknown user
	w, _ = doJSON(t, r, http.MethodPost, "/api/conversations", map[string]any{"otherUserId": 9999})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Conversation{}).Count(&count)
	if count != 0 {
		t.Fatalf("no conversation may be created on rejected input, got %d rows", count)
	}
}

func TestDirectMessageFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	hub := realtime.NewHub()
	a := createTestUser(t, db, "a@example.com", "Ana")
	b := createTestUser(t, db, "b@example.com", "Beto")
	c := createTestUser(t, db, "c@example.com", "Cata")

	conv, err := resolveOrCreate(db, a.ID, b.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	before := conv.LastMessageAt

	asUser := func(uid uint) *gin.Engine {
		r := gin.New()
		grp := r.Group("/api", fakeAuth(uid))
		grp.POST("/conversations/:conversation_id/messages", CreateDirectMessage(db, hub))
		grp.GET("/conversations/:conversation_id/messages", ListDirectMessages(db))
		grp.GET("/conversations", ListConversations(db))
		return r
	}

	path := "/api/conversations/" + itoa(conv.ID) + "/messages"

	time.Sleep(10 * time.Millisecond) // lastMessageAt must visibly advance
	w, body := doJSON(t, asUser(a.ID), http.MethodPost, path, map[string]any{
		"text":       "hola",
		"pictograms": []map[string]any{{"id": 7, "searchText": "hola", "imageUrl": "u"}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", w.Code, body)
	}

	// non-participant gets the same 404 as a missing conversation
	w, _ = doJSON(t, asUser(c.ID), http.MethodPost, path, map[string]any{"text": "intruso"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-participant, got %d", w.Code)
	}

	// history is oldest-first and carries the pictograms
	w, body = doJSON(t, asUser(b.ID), http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	msg := msgs[0].(map[string]any)
	picts := msg["pictograms"].([]any)
	if len(picts) != 1 || picts[0].(map[string]any)["id"].(float64) != 7 {
		t.Fatalf("expected pictogram id 7 to round-trip, got %v", picts)
	}

	// lastMessageAt was touched
	var refreshed models.Conversation
	if err := db.First(&refreshed, conv.ID).Error; err != nil {
		t.Fatalf("reload conversation: %v", err)
	}
	if !refreshed.LastMessageAt.After(before) {
		t.Fatal("expected lastMessageAt to advance after a new message")
	}

	// conversation list shows the thread for both members
	for _, uid := range []uint{a.ID, b.ID} {
		w, body = doJSON(t, asUser(uid), http.MethodGet, "/api/conversations", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 listing conversations, got %d", w.Code)
		}
		convs, _ := body["conversations"].([]any)
		if len(convs) != 1 {
			t.Fatalf("expected 1 conversation for user %d, got %d", uid, len(convs))
		}
	}
}

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}
