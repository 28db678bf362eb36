package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aff-payout-api/internal/dto"
	"aff-payout-api/internal/service"
	"aff-payout-api/internal/utils"
)

type CommissionHandler struct{}

func NewCommissionHandler() *CommissionHandler { return &CommissionHandler{} }

// Record 销售完成，按分佣配置给各收款人入账
func (h *CommissionHandler) Record(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.RecordCommissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	amount, err := utils.ParseMinorUnits(req.Amount, dto.AmountExponent)
	if err != nil {
		respondErr(c, err)
		return
	}

	res, err := service.Eng.RecordCommission(c.Request.Context(), caller, req.MerchantId, req.AffiliateId, amount)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.AccrualVO(res)))
}
