package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autonexgen/site/internal/auth"
	"github.com/autonexgen/site/internal/inquiries"
	"github.com/autonexgen/site/internal/reviews"
	"github.com/autonexgen/site/internal/submission"
)

const testAdminSecret = "test-admin-secret"

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []submission.Fields
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, fields submission.Fields) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.payloads = append(n.payloads, fields)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.payloads)
}

type scriptedResponder struct {
	reply string
}

func (r scriptedResponder) Reply(context.Context, string) string {
	return r.reply
}

type testFixture struct {
	handler  http.Handler
	database *gorm.DB
	notifier *recordingNotifier
}

func newTestFixture(testContext *testing.T) testFixture {
	testContext.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		testContext.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&inquiries.Inquiry{}, &reviews.Review{}); err != nil {
		testContext.Fatalf("failed to migrate: %v", err)
	}

	inquiryService, err := inquiries.NewService(inquiries.ServiceConfig{
		Database:   db,
		IDProvider: inquiries.NewUUIDProvider(),
	})
	if err != nil {
		testContext.Fatalf("failed to build inquiry service: %v", err)
	}

	reviewService, err := reviews.NewService(reviews.ServiceConfig{Database: db})
	if err != nil {
		testContext.Fatalf("failed to build review service: %v", err)
	}

	tokenIssuer, err := auth.NewTokenIssuer(auth.TokenIssuerConfig{
		SigningSecret: []byte("signing-secret"),
		Issuer:        "autonexgen-site",
		Audience:      "autonexgen-admin",
		TokenTTL:      time.Minute,
	})
	if err != nil {
		testContext.Fatalf("failed to build token issuer: %v", err)
	}

	notifier := &recordingNotifier{}
	handler, err := NewHTTPHandler(Dependencies{
		Inquiries:    inquiryService,
		Reviews:      reviewService,
		Notifier:     notifier,
		Chat:         scriptedResponder{reply: "We build AI agents."},
		TokenManager: tokenIssuer,
		AdminSecret:  testAdminSecret,
	})
	if err != nil {
		testContext.Fatalf("failed to build handler: %v", err)
	}

	return testFixture{handler: handler, database: db, notifier: notifier}
}

func postJSON(testContext *testing.T, handler http.Handler, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	testContext.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		testContext.Fatalf("failed to encode payload: %v", err)
	}
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func getPath(testContext *testing.T, handler http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	testContext.Helper()
	request := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestNewHTTPHandlerValidatesDependencies(testContext *testing.T) {
	if _, err := NewHTTPHandler(Dependencies{}); !errors.Is(err, errMissingInquiryService) {
		testContext.Fatalf("expected missing inquiry service error, got %v", err)
	}
}

func TestEveryPageRespondsWithHTML(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	for _, path := range []string{"/", "/services", "/about", "/contact", "/careers", "/blog", "/privacy", "/terms", "/results", "/reviews"} {
		recorder := getPath(testContext, fixture.handler, path, nil)
		if recorder.Code != http.StatusOK {
			testContext.Fatalf("expected 200 for %s, got %d", path, recorder.Code)
		}
		if !strings.Contains(recorder.Header().Get("Content-Type"), "text/html") {
			testContext.Fatalf("expected HTML content type for %s", path)
		}
		if !strings.Contains(recorder.Body.String(), "<!DOCTYPE html>") {
			testContext.Fatalf("expected a full document for %s", path)
		}
	}
}

func TestReviewsPageServesSeedReviewsWhenStoreIsEmpty(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := getPath(testContext, fixture.handler, "/reviews", nil)
	if recorder.Code != http.StatusOK {
		testContext.Fatalf("unexpected status: %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Rohan Mehta") {
		testContext.Fatalf("expected seed reviews on an empty store")
	}
}

func TestCreateInquiryPersistsAndNotifies(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/inquiries", map[string]string{
		"name":    "Rahul",
		"email":   "rahul@x.com",
		"phone":   "+91 98765 43210",
		"message": "Automate my CRM",
	}, nil)

	if recorder.Code != http.StatusCreated {
		testContext.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Reference string    `json:"reference"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		testContext.Fatalf("failed to decode response: %v", err)
	}
	if response.Reference == "" {
		testContext.Fatalf("expected a non-empty reference")
	}

	var stored inquiries.Inquiry
	if err := fixture.database.Where("reference = ?", response.Reference).Take(&stored).Error; err != nil {
		testContext.Fatalf("expected persisted inquiry: %v", err)
	}
	if stored.Email != "rahul@x.com" {
		testContext.Fatalf("unexpected stored email %q", stored.Email)
	}

	if fixture.notifier.count() != 1 {
		testContext.Fatalf("expected exactly one notification, got %d", fixture.notifier.count())
	}
}

func TestCreateInquirySucceedsWhenNotifierFails(testContext *testing.T) {
	fixture := newTestFixture(testContext)
	fixture.notifier.err = errors.New("workflow endpoint down")

	recorder := postJSON(testContext, fixture.handler, "/api/inquiries", map[string]string{
		"name":    "Rahul",
		"email":   "rahul@x.com",
		"phone":   "+91 98765 43210",
		"message": "Automate my CRM",
	}, nil)

	if recorder.Code != http.StatusCreated {
		testContext.Fatalf("expected notifier failure to be swallowed, got %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "workflow endpoint down") {
		testContext.Fatalf("notifier failure leaked into the response")
	}
}

func TestCreateInquiryRejectsIncompletePayloadWithoutWriting(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/inquiries", map[string]string{
		"name":  "Rahul",
		"email": "rahul@x.com",
	}, nil)

	if recorder.Code != http.StatusBadRequest {
		testContext.Fatalf("expected 400, got %d", recorder.Code)
	}

	var count int64
	if err := fixture.database.Model(&inquiries.Inquiry{}).Count(&count).Error; err != nil {
		testContext.Fatalf("failed to count inquiries: %v", err)
	}
	if count != 0 {
		testContext.Fatalf("expected no inquiry rows, got %d", count)
	}
	if fixture.notifier.count() != 0 {
		testContext.Fatalf("expected no notification for a refused payload")
	}
}

func TestCreateReviewReturnsRefreshedListWithNewReviewFirst(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	earlier := reviews.Review{
		Name:      "Old Client",
		Role:      "CTO at Legacy Corp",
		Content:   "Solid work.",
		Rating:    4,
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := fixture.database.Create(&earlier).Error; err != nil {
		testContext.Fatalf("failed to seed review: %v", err)
	}

	recorder := postJSON(testContext, fixture.handler, "/api/reviews", map[string]any{
		"name":    "Priya Patel",
		"role":    "COO at Textile Hub",
		"content": "The WhatsApp agent books appointments while we sleep.",
		"rating":  5,
	}, nil)

	if recorder.Code != http.StatusCreated {
		testContext.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Reviews []struct {
			Name       string `json:"name"`
			IsVerified bool   `json:"is_verified"`
		} `json:"reviews"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		testContext.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Reviews) != 2 {
		testContext.Fatalf("expected both reviews in the refreshed list, got %d", len(response.Reviews))
	}
	if response.Reviews[0].Name != "Priya Patel" {
		testContext.Fatalf("expected the new review first, got %q", response.Reviews[0].Name)
	}
	if response.Reviews[0].IsVerified {
		testContext.Fatalf("expected a fresh review to be unverified")
	}
}

func TestCreateReviewAcceptsFormSerializedStringRating(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/reviews", map[string]any{
		"name":    "Priya Patel",
		"role":    "COO at Textile Hub",
		"content": "Great team.",
		"rating":  "5",
	}, nil)

	if recorder.Code != http.StatusCreated {
		testContext.Fatalf("expected 201 for a string rating, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var stored reviews.Review
	if err := fixture.database.Where("name = ?", "Priya Patel").Take(&stored).Error; err != nil {
		testContext.Fatalf("expected persisted review: %v", err)
	}
	if stored.Rating != 5 {
		testContext.Fatalf("expected rating 5, got %d", stored.Rating)
	}
}

func TestCreateReviewRejectsNonNumericRating(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/reviews", map[string]any{
		"name":    "Priya Patel",
		"role":    "COO at Textile Hub",
		"content": "Great team.",
		"rating":  "loved it",
	}, nil)

	if recorder.Code != http.StatusBadRequest {
		testContext.Fatalf("expected 400 for a non-numeric rating, got %d", recorder.Code)
	}

	var count int64
	if err := fixture.database.Model(&reviews.Review{}).Count(&count).Error; err != nil {
		testContext.Fatalf("failed to count reviews: %v", err)
	}
	if count != 0 {
		testContext.Fatalf("expected no review rows, got %d", count)
	}
}

func TestCreateReviewRefusesUnsetRatingWithoutWriting(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/reviews", map[string]any{
		"name":    "Priya Patel",
		"role":    "COO at Textile Hub",
		"content": "Great team.",
		"rating":  0,
	}, nil)

	if recorder.Code != http.StatusBadRequest {
		testContext.Fatalf("expected 400 for an unset rating, got %d", recorder.Code)
	}

	var count int64
	if err := fixture.database.Model(&reviews.Review{}).Count(&count).Error; err != nil {
		testContext.Fatalf("failed to count reviews: %v", err)
	}
	if count != 0 {
		testContext.Fatalf("expected no review rows, got %d", count)
	}
}

func TestListReviewsFallsBackToSeedsWhenEmpty(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := getPath(testContext, fixture.handler, "/api/reviews", nil)
	if recorder.Code != http.StatusOK {
		testContext.Fatalf("unexpected status: %d", recorder.Code)
	}

	var response struct {
		Reviews []struct {
			Name string `json:"name"`
		} `json:"reviews"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		testContext.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Reviews) == 0 {
		testContext.Fatalf("expected seed reviews instead of an empty list")
	}
}

func TestChatAlwaysAnswersWithAPrintableReply(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/chat", map[string]string{"prompt": "What do you do?"}, nil)
	if recorder.Code != http.StatusOK {
		testContext.Fatalf("unexpected status: %d", recorder.Code)
	}

	var response struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		testContext.Fatalf("failed to decode response: %v", err)
	}
	if response.Reply != "We build AI agents." {
		testContext.Fatalf("unexpected reply %q", response.Reply)
	}
}

func TestChatRejectsBlankPrompt(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := postJSON(testContext, fixture.handler, "/api/chat", map[string]string{"prompt": "  "}, nil)
	if recorder.Code != http.StatusBadRequest {
		testContext.Fatalf("expected 400 for a blank prompt, got %d", recorder.Code)
	}
}

func TestAdminTokenFlowGuardsInquiryList(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	if recorder := getPath(testContext, fixture.handler, "/api/admin/inquiries", nil); recorder.Code != http.StatusUnauthorized {
		testContext.Fatalf("expected 401 without a token, got %d", recorder.Code)
	}

	if recorder := postJSON(testContext, fixture.handler, "/api/admin/token", map[string]string{"secret": "wrong"}, nil); recorder.Code != http.StatusUnauthorized {
		testContext.Fatalf("expected 401 for a wrong secret, got %d", recorder.Code)
	}

	tokenRecorder := postJSON(testContext, fixture.handler, "/api/admin/token", map[string]string{"secret": testAdminSecret}, nil)
	if tokenRecorder.Code != http.StatusOK {
		testContext.Fatalf("expected token issuance to succeed, got %d", tokenRecorder.Code)
	}
	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(tokenRecorder.Body.Bytes(), &tokenResponse); err != nil {
		testContext.Fatalf("failed to decode token response: %v", err)
	}
	if tokenResponse.TokenType != "Bearer" || tokenResponse.AccessToken == "" {
		testContext.Fatalf("unexpected token response: %+v", tokenResponse)
	}

	seedInquiry := postJSON(testContext, fixture.handler, "/api/inquiries", map[string]string{
		"name":    "Rahul",
		"email":   "rahul@x.com",
		"phone":   "+91 98765 43210",
		"message": "Automate my CRM",
	}, nil)
	if seedInquiry.Code != http.StatusCreated {
		testContext.Fatalf("failed to seed inquiry: %d", seedInquiry.Code)
	}

	listRecorder := getPath(testContext, fixture.handler, "/api/admin/inquiries", map[string]string{
		"Authorization": "Bearer " + tokenResponse.AccessToken,
	})
	if listRecorder.Code != http.StatusOK {
		testContext.Fatalf("expected authorized list to succeed, got %d", listRecorder.Code)
	}

	var listResponse struct {
		Inquiries []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"inquiries"`
	}
	if err := json.Unmarshal(listRecorder.Body.Bytes(), &listResponse); err != nil {
		testContext.Fatalf("failed to decode list response: %v", err)
	}
	if len(listResponse.Inquiries) != 1 || listResponse.Inquiries[0].Name != "Rahul" {
		testContext.Fatalf("unexpected inquiry list: %+v", listResponse.Inquiries)
	}
}

func TestHealthEndpointReportsOK(testContext *testing.T) {
	fixture := newTestFixture(testContext)

	recorder := getPath(testContext, fixture.handler, "/healthz", nil)
	if recorder.Code != http.StatusOK {
		testContext.Fatalf("unexpected status: %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "ok") {
		testContext.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}
