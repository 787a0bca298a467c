package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inflate-app/feedback-flow/app"
	"github.com/inflate-app/feedback-flow/config"
	"github.com/inflate-app/feedback-flow/database"
	"github.com/inflate-app/feedback-flow/model"
)

func newTestApp(t *testing.T, cfg config.Config) app.App {
	t.Helper()
	cfg.DBUrl = filepath.Join(t.TempDir(), "test.sqlite")
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return app.App{DB: db, Config: cfg}
}

func newTestServer(t *testing.T, cfg config.Config) (*httptest.Server, app.App) {
	t.Helper()
	a := newTestApp(t, cfg)
	srv := httptest.NewServer(Wire(a))
	t.Cleanup(srv.Close)
	return srv, a
}

func TestPostFeedbackStoresRow(t *testing.T) {
	srv, a := newTestServer(t, config.Config{})

	resp, err := http.Post(
		srv.URL+"/api/feedback?order=ord-1",
		"application/json",
		strings.NewReader(`{"questionId": "product:p1", "answer": {"rating": 5, "comment": "nice"}}`),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var orderId, stepId, answer string
	err = a.QueryRow(`SELECT order_id, step_id, answer FROM feedback`).Scan(&orderId, &stepId, &answer)
	if err != nil {
		t.Fatalf("query feedback: %v", err)
	}
	if orderId != "ord-1" || stepId != "product:p1" {
		t.Fatalf("stored (%q, %q)", orderId, stepId)
	}
	if !strings.Contains(answer, `"rating":5`) {
		t.Fatalf("answer json = %s", answer)
	}
}

func TestPostFeedbackMissingQuestionID(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})

	resp, err := http.Post(srv.URL+"/api/feedback", "application/json", strings.NewReader(`{"answer": 9}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetQuestionsMockMode(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{Mock: true})

	resp, err := http.Get(srv.URL + "/api/questions/whatever/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	payload := model.Payload{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Questions) != len(model.MockQuestions) {
		t.Fatalf("got %d questions, want %d", len(payload.Questions), len(model.MockQuestions))
	}
	if payload.Brand() == nil {
		t.Fatal("mock payload should carry branding")
	}
}

func TestGetQuestionsStored(t *testing.T) {
	srv, a := newTestServer(t, config.Config{})

	sets := database.NewQuestionSetStore(a.DB)
	want := &model.Payload{
		Questions: []model.Question{
			{ID: "nps", Type: model.TypeNPS, Prompt: "Rate us", Scale: 10},
		},
		Branding: []model.Branding{model.MockBranding},
	}
	if err := sets.Put(context.Background(), "ord-1", want); err != nil {
		t.Fatalf("seed question set: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/questions/ord-1/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	payload := model.Payload{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Questions) != 1 || payload.Questions[0].ID != "nps" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestGetQuestionsUnknownOrder(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})

	resp, err := http.Get(srv.URL + "/api/questions/nope/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
