package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aff-payout-api/internal/dao"
	"aff-payout-api/internal/dto"
	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/service"
	"aff-payout-api/internal/utils"
)

type PayoutHandler struct{}

func NewPayoutHandler() *PayoutHandler { return &PayoutHandler{} }

// Run 推进调度钟并给到期周期的商户发放
func (h *PayoutHandler) Run(c *gin.Context) {
	var req dto.RunPayoutsReq
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	res, err := service.RunDuePayouts(c.Request.Context(), req.Cadences)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.RunVO(res)))
}

// Recipient 收款人主动提取，只看门槛不看周期
func (h *PayoutHandler) Recipient(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.RecipientPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	rec, err := service.Eng.ProcessRecipientPayout(c.Request.Context(), caller, req.RecipientId)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.RecordVO(rec)))
}

// Batch 管理员批量结算
func (h *PayoutHandler) Batch(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.BatchPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	outcomes, err := service.Eng.BatchProcessPayouts(c.Request.Context(), caller, req.Recipients)
	if err != nil {
		respondErr(c, err)
		return
	}
	vos := make([]dto.BatchOutcomeVO, 0, len(outcomes))
	for _, o := range outcomes {
		vo := dto.BatchOutcomeVO{RecipientId: o.RecipientID}
		if o.RecordID != 0 {
			vo.RecordId = strconv.FormatUint(o.RecordID, 10)
		}
		if o.Err != nil {
			vo.Error = o.Err.Error()
		}
		vos = append(vos, vo)
	}
	c.JSON(http.StatusOK, utils.Success(vos))
}

// Due 查询某周期当前是否到期
func (h *PayoutHandler) Due(c *gin.Context) {
	cad, err := schedule.ParseCadence(c.DefaultQuery("cadence", "immediate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
		return
	}
	due, err := service.Eng.IsPayoutDue(cad)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"cadence": cad.String(), "due": due}))
}

// InitSchedule 初始化（或重置）调度钟
func (h *PayoutHandler) InitSchedule(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	st, err := service.Eng.InitializeSchedule(caller)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(dto.ScheduleStateVO{
		NextDaily:   st.NextDaily,
		NextWeekly:  st.NextWeekly,
		NextMonthly: st.NextMonthly,
	}))
}

// GetRecord 按记录号查结算历史
func (h *PayoutHandler) GetRecord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, err := service.Eng.GetPayoutRecord(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "not found"})
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.RecordVO(rec)))
}

// ListRecords 按商户查近期结算历史
func (h *PayoutHandler) ListRecords(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	recs, err := service.Eng.ListPayoutRecords(id, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	vos := make([]*dto.PayoutRecordVO, 0, len(recs))
	for i := range recs {
		vos = append(vos, service.RecordVO(&recs[i]))
	}
	c.JSON(http.StatusOK, utils.Success(vos))
}

// GetBalance 查收款人待结算余额
func (h *PayoutHandler) GetBalance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := service.Eng.GetPendingBalance(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "not found"})
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.BalanceVO(b)))
}

// ListAffiliateRecords 按推广员查近期结算历史
func (h *PayoutHandler) ListAffiliateRecords(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	d := dao.NewLedgerDao()
	recs, err := d.ListRecordsByAffiliate(id, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	vos := make([]*dto.PayoutRecordVO, 0, len(recs))
	for i := range recs {
		vos = append(vos, service.RecordVO(&recs[i]))
	}
	c.JSON(http.StatusOK, utils.Success(vos))
}

// ListRecipientRecords 按收款人查近期结算历史
func (h *PayoutHandler) ListRecipientRecords(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	d := dao.NewLedgerDao()
	recs, err := d.ListRecordsByRecipient(id, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	vos := make([]*dto.PayoutRecordVO, 0, len(recs))
	for i := range recs {
		vos = append(vos, service.RecordVO(&recs[i]))
	}
	c.JSON(http.StatusOK, utils.Success(vos))
}
