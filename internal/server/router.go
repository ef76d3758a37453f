package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/autonexgen/site/internal/inquiries"
	"github.com/autonexgen/site/internal/reveal"
	"github.com/autonexgen/site/internal/reviews"
	"github.com/autonexgen/site/internal/submission"
	"github.com/autonexgen/site/internal/web"
)

const adminSubjectContextKey = "autonexgen_admin_subject"

var (
	errMissingInquiryService = errors.New("inquiry service dependency required")
	errMissingReviewService  = errors.New("review service dependency required")
	errMissingChatResponder  = errors.New("chat responder dependency required")
	errMissingTokenManager   = errors.New("token manager dependency required")
	errMissingAdminSecret    = errors.New("admin secret dependency required")
	errInvalidAuthorization  = errors.New("authorization header missing or invalid")
)

// ChatResponder answers playground prompts. Replies are always printable;
// upstream failures surface as fixed apology text, never as errors.
type ChatResponder interface {
	Reply(ctx context.Context, prompt string) string
}

// AdminTokenManager issues and validates the bearer tokens for the admin
// read endpoints.
type AdminTokenManager interface {
	IssueToken(ctx context.Context, subject string) (string, int64, error)
	ValidateToken(token string) (string, error)
}

type Dependencies struct {
	Inquiries    *inquiries.Service
	Reviews      *reviews.Service
	Notifier     submission.Notifier
	Chat         ChatResponder
	TokenManager AdminTokenManager
	AdminSecret  string
	Reveal       reveal.Config
	Logger       *zap.Logger
}

func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Inquiries == nil {
		return nil, errMissingInquiryService
	}
	if deps.Reviews == nil {
		return nil, errMissingReviewService
	}
	if deps.Chat == nil {
		return nil, errMissingChatResponder
	}
	if deps.TokenManager == nil {
		return nil, errMissingTokenManager
	}
	if strings.TrimSpace(deps.AdminSecret) == "" {
		return nil, errMissingAdminSecret
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	revealConfig := deps.Reveal
	if revealConfig == (reveal.Config{}) {
		revealConfig = reveal.DefaultConfig()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		inquiries: deps.Inquiries,
		reviews:   deps.Reviews,
		notifier:  deps.Notifier,
		chat:      deps.Chat,
		tokens:    deps.TokenManager,
		secret:    deps.AdminSecret,
		reveal:    revealConfig,
		logger:    logger,
	}

	staticFS, err := web.StaticFS()
	if err != nil {
		return nil, err
	}
	router.StaticFS("/static", http.FS(staticFS))

	for _, view := range web.AllViews() {
		router.GET(view.Path(), handler.handlePage)
	}

	router.GET("/healthz", handler.handleHealth)
	router.POST("/api/inquiries", handler.handleCreateInquiry)
	router.POST("/api/reviews", handler.handleCreateReview)
	router.GET("/api/reviews", handler.handleListReviews)
	router.POST("/api/chat", handler.handleChat)
	router.POST("/api/admin/token", handler.handleAdminToken)

	admin := router.Group("/api/admin")
	admin.Use(handler.authorizeAdmin)
	admin.GET("/inquiries", handler.handleAdminInquiries)

	return router, nil
}

type httpHandler struct {
	inquiries *inquiries.Service
	reviews   *reviews.Service
	notifier  submission.Notifier
	chat      ChatResponder
	tokens    AdminTokenManager
	secret    string
	reveal    reveal.Config
	logger    *zap.Logger
}

func (h *httpHandler) handlePage(c *gin.Context) {
	view, err := web.ParseView(strings.TrimPrefix(c.Request.URL.Path, "/"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	var renderErr error
	switch view {
	case web.ViewHome:
		renderErr = web.HomePage(h.reveal).Render(c.Writer)
	case web.ViewServices:
		renderErr = web.ServicesPage(h.reveal).Render(c.Writer)
	case web.ViewAbout:
		renderErr = web.AboutPage(h.reveal).Render(c.Writer)
	case web.ViewContact:
		renderErr = web.ContactPage(h.reveal).Render(c.Writer)
	case web.ViewCareers:
		renderErr = web.CareersPage(h.reveal).Render(c.Writer)
	case web.ViewBlog:
		renderErr = web.BlogPage(h.reveal).Render(c.Writer)
	case web.ViewPrivacy:
		renderErr = web.PrivacyPage(h.reveal).Render(c.Writer)
	case web.ViewTerms:
		renderErr = web.TermsPage(h.reveal).Render(c.Writer)
	case web.ViewResults:
		renderErr = web.ResultsPage(h.reveal).Render(c.Writer)
	case web.ViewReviews:
		list := h.reviews.ListWithFallback(c.Request.Context())
		renderErr = web.ReviewsPage(h.reveal, list).Render(c.Writer)
	}
	if renderErr != nil {
		h.logger.Error("page render failed", zap.String("view", string(view)), zap.Error(renderErr))
	}
}

func (h *httpHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type inquiryRequestPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type inquiryResponsePayload struct {
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// inquiryWriter adapts the inquiry store to the submission flow's primary
// write, capturing the persisted record for the response.
type inquiryWriter struct {
	service *inquiries.Service
	created inquiries.Inquiry
}

func (w *inquiryWriter) Write(ctx context.Context, fields submission.Fields) error {
	created, err := w.service.Create(ctx, inquiries.NewInquiry{
		Name:    fields["name"],
		Email:   fields["email"],
		Phone:   fields["phone"],
		Message: fields["message"],
	})
	if err != nil {
		return err
	}
	w.created = created
	return nil
}

func (h *httpHandler) handleCreateInquiry(c *gin.Context) {
	var request inquiryRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	writer := &inquiryWriter{service: h.inquiries}
	flow, err := submission.NewFlow(submission.Config{
		Primary:  writer,
		Notifier: h.notifier,
		Validate: submission.RequireFields("name", "email", "phone", "message"),
		Logger:   h.logger,
	})
	if err != nil {
		h.logger.Error("inquiry flow construction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	fields := submission.Fields{
		"name":    request.Name,
		"email":   request.Email,
		"phone":   request.Phone,
		"message": request.Message,
	}
	if err := flow.Submit(c.Request.Context(), fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	state := flow.State()
	if state.Phase != submission.PhaseSuccess {
		c.JSON(http.StatusBadGateway, gin.H{"error": state.ErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, inquiryResponsePayload{
		Reference: writer.created.Reference,
		CreatedAt: writer.created.CreatedAt,
	})
}

// ratingValue accepts the rating as a JSON number or as the quoted digit a
// browser form serializer produces. Out-of-range values pass through so the
// flow's validation hook refuses them uniformly.
type ratingValue int

func (r *ratingValue) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*r = 0
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*r = ratingValue(parsed)
	return nil
}

type reviewRequestPayload struct {
	Name    string      `json:"name"`
	Role    string      `json:"role"`
	Content string      `json:"content"`
	Rating  ratingValue `json:"rating"`
}

type reviewPayload struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReviewPayloads(records []reviews.Review) []reviewPayload {
	payloads := make([]reviewPayload, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, reviewPayload{
			ID:         record.ID,
			Name:       record.Name,
			Role:       record.Role,
			Content:    record.Content,
			Rating:     record.Rating,
			IsVerified: record.IsVerified,
			CreatedAt:  record.CreatedAt,
		})
	}
	return payloads
}

// reviewWriter adapts the review store to the submission flow.
type reviewWriter struct {
	service *reviews.Service
	rating  int
}

func (w *reviewWriter) Write(ctx context.Context, fields submission.Fields) error {
	_, err := w.service.Create(ctx, reviews.NewReview{
		Name:    fields["name"],
		Role:    fields["role"],
		Content: fields["content"],
		Rating:  w.rating,
	})
	return err
}

// reviewRefresher re-fetches the authoritative list after a successful write
// so the response reflects the just-created record.
type reviewRefresher struct {
	service   *reviews.Service
	refreshed []reviews.Review
}

func (r *reviewRefresher) Refresh(ctx context.Context) error {
	records, err := r.service.List(ctx)
	if err != nil {
		return err
	}
	r.refreshed = records
	return nil
}

func (h *httpHandler) handleCreateReview(c *gin.Context) {
	var request reviewRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	rating := int(request.Rating)
	writer := &reviewWriter{service: h.reviews, rating: rating}
	refresher := &reviewRefresher{service: h.reviews}
	flow, err := submission.NewFlow(submission.Config{
		Primary:   writer,
		Refresher: refresher,
		Validate: func(fields submission.Fields) error {
			if rating < 1 || rating > 5 {
				return reviews.ErrRatingOutOfRange
			}
			return submission.RequireFields("name", "role", "content")(fields)
		},
		Logger: h.logger,
	})
	if err != nil {
		h.logger.Error("review flow construction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	fields := submission.Fields{
		"name":    request.Name,
		"role":    request.Role,
		"content": request.Content,
		"rating":  strconv.Itoa(rating),
	}
	if err := flow.Submit(c.Request.Context(), fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	state := flow.State()
	if state.Phase != submission.PhaseSuccess {
		c.JSON(http.StatusBadGateway, gin.H{"error": state.ErrorMessage})
		return
	}

	refreshed := refresher.refreshed
	if refreshed == nil {
		refreshed = h.reviews.ListWithFallback(c.Request.Context())
	}
	c.JSON(http.StatusCreated, gin.H{"reviews": toReviewPayloads(refreshed)})
}

func (h *httpHandler) handleListReviews(c *gin.Context) {
	records := h.reviews.ListWithFallback(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"reviews": toReviewPayloads(records)})
}

type chatRequestPayload struct {
	Prompt string `json:"prompt"`
}

func (h *httpHandler) handleChat(c *gin.Context) {
	var request chatRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil || strings.TrimSpace(request.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	reply := h.chat.Reply(c.Request.Context(), request.Prompt)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type adminTokenRequestPayload struct {
	Secret string `json:"secret"`
}

type adminTokenResponsePayload struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (h *httpHandler) handleAdminToken(c *gin.Context) {
	var request adminTokenRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil || request.Secret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(request.Secret), []byte(h.secret)) != 1 {
		h.logger.Warn("admin token request with wrong secret")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	token, expiresIn, err := h.tokens.IssueToken(c.Request.Context(), "admin")
	if err != nil {
		h.logger.Error("failed to issue admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_issue_failed"})
		return
	}

	c.JSON(http.StatusOK, adminTokenResponsePayload{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
	})
}

type inquiryListItemPayload struct {
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *httpHandler) handleAdminInquiries(c *gin.Context) {
	subject := c.GetString(adminSubjectContextKey)
	records, err := h.inquiries.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list inquiries", zap.String("subject", subject), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed"})
		return
	}

	payloads := make([]inquiryListItemPayload, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, inquiryListItemPayload{
			Reference: record.Reference,
			Name:      record.Name,
			Email:     record.Email,
			Phone:     record.Phone,
			Message:   record.Message,
			CreatedAt: record.CreatedAt,
		})
	}
	h.logger.Info("admin inquiry list served", zap.String("subject", subject), zap.Int("count", len(payloads)))
	c.JSON(http.StatusOK, gin.H{"inquiries": payloads})
}

func (h *httpHandler) authorizeAdmin(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuthorization.Error()})
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuthorization.Error()})
		return
	}
	subject, err := h.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Info("admin token validation failed", zap.Error(err))
		} else {
			h.logger.Warn("admin token validation failed", zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(adminSubjectContextKey, subject)
	c.Next()
}
