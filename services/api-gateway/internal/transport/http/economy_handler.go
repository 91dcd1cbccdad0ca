package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/client"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/middleware"
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type EconomyHandler struct {
	api     economypb.EconomyServiceClient
	rewards *client.Rewards
	jars    *client.JarTracker
	tr      *i18n.Translator
	opts    []client.Option
}

func NewEconomyHandler(api economypb.EconomyServiceClient, tr *i18n.Translator, opts ...client.Option) *EconomyHandler {
	return &EconomyHandler{
		api:     api,
		rewards: client.NewRewards(api, opts...),
		jars:    client.NewJarTracker(api, opts...),
		tr:      tr,
		opts:    opts,
	}
}

func (h *EconomyHandler) hearts(c *gin.Context) *client.HeartTracker {
	return client.NewHeartTracker(h.api, c.GetString("userId"), h.opts...)
}

// fail turns an economy error into a localized HTTP error.
func (h *EconomyHandler) fail(c *gin.Context, err error) {
	var code int
	switch status.Code(err) {
	case codes.InvalidArgument, codes.OutOfRange:
		code = http.StatusBadRequest
	case codes.FailedPrecondition, codes.AlreadyExists, codes.Aborted:
		code = http.StatusConflict
	case codes.NotFound:
		code = http.StatusNotFound
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		code = http.StatusServiceUnavailable
	default:
		if errors.Is(err, client.ErrClaimInProgress) {
			code = http.StatusConflict
			break
		}
		if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusServiceUnavailable
			break
		}
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		code = http.StatusInternalServerError
	}
	middleware.Fail(c, h.tr, code, client.ErrorKey(err))
}

func (h *EconomyHandler) badRequest(c *gin.Context) {
	middleware.Fail(c, h.tr, http.StatusBadRequest, "bad_request")
}

type createProfileReq struct {
	Username string `json:"username" binding:"required"`
}

// POST /api/v1/economy/profile
func (h *EconomyHandler) CreateProfile(c *gin.Context) {
	var req createProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	res, err := h.api.CreateProfile(c, &economypb.CreateProfileRequest{
		UserId:   c.GetString("userId"),
		Username: req.Username,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res.GetProfile())
}

// GET /api/v1/economy/profile
func (h *EconomyHandler) GetProfile(c *gin.Context) {
	res, err := h.api.GetProfile(c, &economypb.UserRequest{UserId: c.GetString("userId")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res.GetProfile())
}

type heartsView struct {
	Hearts            int       `json:"hearts"`
	MaxHearts         int       `json:"max_hearts"`
	LastRefillAt      time.Time `json:"last_refill_at"`
	TimeUntilRefillMs int64     `json:"time_until_refill_ms"`
	RefillDisplay     string    `json:"refill_display"`
	CanAnswer         bool      `json:"can_answer"`
}

func toHeartsView(s client.HeartState) heartsView {
	return heartsView{
		Hearts:            s.Hearts,
		MaxHearts:         s.MaxHearts,
		LastRefillAt:      s.LastRefillAt,
		TimeUntilRefillMs: s.TimeUntilRefill.Milliseconds(),
		RefillDisplay:     s.RefillTimeDisplay(),
		CanAnswer:         s.CanAnswer(),
	}
}

// GET /api/v1/economy/hearts
func (h *EconomyHandler) GetHearts(c *gin.Context) {
	s, err := h.hearts(c).CheckAndRefillHearts(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toHeartsView(s))
}

type deductReq struct {
	Amount int `json:"amount" binding:"min=0,max=1000"`
}

// POST /api/v1/economy/hearts/deduct
func (h *EconomyHandler) DeductHearts(c *gin.Context) {
	var req deductReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c)
			return
		}
	}

	s, err := h.hearts(c).DeductHeart(c, req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toHeartsView(s))
}

type awardReq struct {
	Amount    int            `json:"amount" binding:"required,min=1,max=1000000"`
	Source    string         `json:"source"`
	ChapterID string         `json:"chapter_id"`
	CourseID  string         `json:"course_id"`
	Metadata  map[string]any `json:"metadata"`
}

// POST /api/v1/economy/hearts/award
func (h *EconomyHandler) AwardHearts(c *gin.Context) {
	var req awardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	s, err := h.hearts(c).AwardHearts(c, req.Amount, req.Source, req.Metadata)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toHeartsView(s))
}

// POST /api/v1/economy/xp
func (h *EconomyHandler) AwardXP(c *gin.Context) {
	h.award(c, h.rewards.AwardXP)
}

// POST /api/v1/economy/gems
func (h *EconomyHandler) AwardGems(c *gin.Context) {
	h.award(c, h.rewards.AwardGems)
}

func (h *EconomyHandler) award(c *gin.Context, apply func(ctx context.Context, userID string, a client.Award) (client.AwardResult, error)) {
	var req awardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	res, err := apply(c, c.GetString("userId"), client.Award{
		Amount:    req.Amount,
		Source:    req.Source,
		ChapterID: req.ChapterID,
		CourseID:  req.CourseID,
		Metadata:  req.Metadata,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"new_balance":    res.NewBalance,
		"transaction_id": res.TransactionID,
		"fallback":       res.Fallback,
	})
}

type convertReq struct {
	Hearts  int `json:"hearts" binding:"required,min=1,max=1000"`
	GemCost int `json:"gem_cost" binding:"min=0,max=1000000"`
}

// POST /api/v1/economy/shop/convert
func (h *EconomyHandler) ConvertGems(c *gin.Context) {
	var req convertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	res, err := h.hearts(c).ConvertGemsToHearts(c, req.Hearts, req.GemCost)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_gems": res.NewGems, "new_hearts": res.NewHearts})
}

const maxLeaderboardLimit = 100

// GET /api/v1/economy/leaderboard?limit=10
func (h *EconomyHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > maxLeaderboardLimit {
		h.badRequest(c)
		return
	}

	res, err := h.api.GetLeaderboard(c, &economypb.LeaderboardRequest{Limit: int32(limit)})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Entries)
}
