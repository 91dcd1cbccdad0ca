package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/client"
)

type jarView struct {
	FillPercent   int    `json:"fill_percent"`
	PollenInCycle int    `json:"pollen_in_cycle"`
	IsFull        bool   `json:"is_full"`
	State         string `json:"state"`
}

func (h *EconomyHandler) viewJar(userID string, jar client.JarProgress) jarView {
	return jarView{
		FillPercent:   jar.FillPercent,
		PollenInCycle: jar.PollenInCycle,
		IsFull:        jar.IsFull,
		State:         h.jars.State(userID).String(),
	}
}

// GET /api/v1/economy/jar
func (h *EconomyHandler) GetJar(c *gin.Context) {
	userID := c.GetString("userId")
	jar := h.jars.GetJarProgress(c, userID)
	c.JSON(http.StatusOK, h.viewJar(userID, jar))
}

type pollenReq struct {
	Pollen int `json:"pollen" binding:"required,min=1,max=1000000"`
}

// POST /api/v1/economy/jar/pollen
func (h *EconomyHandler) AddPollen(c *gin.Context) {
	var req pollenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	userID := c.GetString("userId")
	res, err := h.jars.AddPollen(c, userID, req.Pollen)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jar":         h.viewJar(userID, res.JarProgress),
		"became_full": res.BecameFull,
		"gift":        h.jars.Pending(userID),
	})
}

// POST /api/v1/economy/gifts/generate
func (h *EconomyHandler) GenerateGift(c *gin.Context) {
	gift, err := h.jars.EnsureGift(c, c.GetString("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// GET /api/v1/economy/gifts/unclaimed
func (h *EconomyHandler) UnclaimedGift(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gift": h.jars.GetUnclaimedGift(c, c.GetString("userId"))})
}

// POST /api/v1/economy/gifts/:id/claim
func (h *EconomyHandler) ClaimGift(c *gin.Context) {
	res, err := h.jars.ClaimMysteryGift(c, c.GetString("userId"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gift_type":        res.GiftType,
		"gift_amount":      res.GiftAmount,
		"hearts":           res.Hearts,
		"gems":             res.Gems,
		"badge_expires_at": res.BadgeExpiresAt,
	})
}

// GET /api/v1/economy/badge
func (h *EconomyHandler) Badge(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"badge": h.jars.GetActiveFlamingBadge(c, c.GetString("userId"))})
}
