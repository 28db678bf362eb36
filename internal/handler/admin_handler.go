package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aff-payout-api/internal/dto"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/service"
	"aff-payout-api/internal/split"
	"aff-payout-api/internal/utils"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

// SetMerchantConfig 商户结算配置：周期、门槛、默认比例
func (h *AdminHandler) SetMerchantConfig(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.MerchantConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	cad, err := schedule.ParseCadence(req.Schedule)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	threshold := int64(0)
	if req.MinThreshold != "" {
		if threshold, err = utils.ParseMinorUnits(req.MinThreshold, dto.AmountExponent); err != nil {
			respondErr(c, err)
			return
		}
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	cfg := &engine.MerchantConfig{
		MerchantID:    req.MerchantId,
		Schedule:      cad,
		MinThreshold:  threshold,
		DefaultRateBp: req.DefaultRateBp,
		Active:        active,
	}
	if err := service.Eng.SetMerchantConfig(caller, cfg); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

// SetSplit 商户对推广员的分佣配置
func (h *AdminHandler) SetSplit(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CommissionSplitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sp := &engine.CommissionSplit{
		MerchantID:  req.MerchantId,
		AffiliateID: req.AffiliateId,
		Active:      active,
	}
	for _, r := range req.Recipients {
		sp.Recipients = append(sp.Recipients, split.Recipient{
			RecipientID: r.RecipientId,
			ShareBp:     r.ShareBp,
		})
	}
	if err := service.Eng.SetCommissionSplit(caller, sp); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

// SetThreshold 单独调整商户结算门槛
func (h *AdminHandler) SetThreshold(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.ThresholdReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	threshold, err := utils.ParseMinorUnits(req.Threshold, dto.AmountExponent)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := service.Eng.UpdatePayoutThreshold(caller, req.MerchantId, threshold); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

// SetAdmin 任命或撤销管理员
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.AdminGrantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	if err := service.Eng.SetAdministrator(caller, req.Id, *req.Active); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

// GetMerchantConfig 查商户结算配置
func (h *AdminHandler) GetMerchantConfig(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cfg, err := service.Eng.GetMerchantConfig(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "not found"})
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{
		"merchantId":    cfg.MerchantID,
		"schedule":      cfg.Schedule.String(),
		"minThreshold":  utils.FormatMinorUnits(cfg.MinThreshold, dto.AmountExponent),
		"defaultRateBp": cfg.DefaultRateBp,
		"active":        cfg.Active,
	}))
}

// GetSplit 查分佣配置
func (h *AdminHandler) GetSplit(c *gin.Context) {
	mid, ok := parseID(c, "id")
	if !ok {
		return
	}
	aid, ok := parseID(c, "affiliateId")
	if !ok {
		return
	}
	sp, err := service.Eng.GetCommissionSplit(mid, aid)
	if err != nil {
		respondErr(c, err)
		return
	}
	if sp == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "not found"})
		return
	}
	c.JSON(http.StatusOK, utils.Success(sp))
}
