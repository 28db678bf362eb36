package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aff-payout-api/internal/constant"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/utils"
)

// callerID 调用方身份，从 X-Caller-Id 头取；身份真伪由 HMAC 签名背书
func callerID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.GetHeader("X-Caller-Id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeAccessDenied))
		return 0, false
	}
	return id, true
}

// respondErr 引擎错误到错误码的映射
func respondErr(c *gin.Context, err error) {
	var ce *constant.CustomError
	if errors.As(err, &ce) {
		c.JSON(http.StatusOK, utils.Error(ce.Code()))
		return
	}

	code := constant.CodeSystemError
	switch {
	case errors.Is(err, engine.ErrNotAuthorized):
		code = constant.CodeAccessDenied
	case errors.Is(err, engine.ErrMerchantNotFound):
		code = constant.CodeMerchantNotFound
	case errors.Is(err, engine.ErrInvalidAmount):
		code = constant.CodeInvalidAmount
	case errors.Is(err, engine.ErrInvalidThreshold):
		code = constant.CodeInvalidThreshold
	case errors.Is(err, engine.ErrInvalidRate):
		code = constant.CodeInvalidCommissionSplit
	case errors.Is(err, engine.ErrInvalidRecipient):
		code = constant.CodeInvalidRecipient
	case errors.Is(err, engine.ErrNoPendingPayout):
		code = constant.CodeNoPendingPayouts
	case errors.Is(err, engine.ErrThresholdNotMet):
		code = constant.CodePayoutThresholdNotMet
	case errors.Is(err, engine.ErrTransferFailed):
		code = constant.CodeTransferFailed
	case errors.Is(err, engine.ErrBatchLimit):
		code = constant.CodeBatchLimitExceeded
	case errors.Is(err, engine.ErrScheduleNotInit):
		code = constant.CodeInvalidPayoutSchedule
	case errors.Is(err, utils.ErrBadAmount):
		code = constant.CodeInvalidAmount
	}
	c.JSON(http.StatusOK, utils.Error(code))
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "bad " + name})
		return 0, false
	}
	return id, true
}
