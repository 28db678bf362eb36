package dao

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/split"

	mainmodel "aff-payout-api/internal/model/main"
)

// MainDao 主库访问：商户配置、分佣配置、管理员、调度状态
type MainDao struct{}

func NewMainDao() *MainDao { return &MainDao{} }

func (r *MainDao) GetMerchantConfig(merchantID uint64) (*engine.MerchantConfig, error) {
	var m mainmodel.PayoutMerchant
	if err := dal.MainDB.Where("m_id=?", merchantID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	cad, err := schedule.ParseCadence(m.Schedule)
	if err != nil {
		return nil, err
	}
	return &engine.MerchantConfig{
		MerchantID:    m.MerchantID,
		Schedule:      cad,
		MinThreshold:  m.MinThreshold,
		DefaultRateBp: m.DefaultRateBp,
		Active:        m.Status == 1,
	}, nil
}

func (r *MainDao) PutMerchantConfig(cfg *engine.MerchantConfig) error {
	status := int8(0)
	if cfg.Active {
		status = 1
	}
	m := mainmodel.PayoutMerchant{
		MerchantID:    cfg.MerchantID,
		Schedule:      cfg.Schedule.String(),
		MinThreshold:  cfg.MinThreshold,
		DefaultRateBp: cfg.DefaultRateBp,
		Status:        status,
	}
	return dal.MainDB.Save(&m).Error
}

func (r *MainDao) GetSplit(merchantID, affiliateID uint64) (*engine.CommissionSplit, error) {
	var m mainmodel.CommissionSplit
	if err := dal.MainDB.Where("m_id=? AND affiliate_id=?", merchantID, affiliateID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var recipients []split.Recipient
	if err := json.Unmarshal([]byte(m.Recipients), &recipients); err != nil {
		return nil, err
	}
	return &engine.CommissionSplit{
		MerchantID:  m.MerchantID,
		AffiliateID: m.AffiliateID,
		Recipients:  recipients,
		Active:      m.Status == 1,
	}, nil
}

func (r *MainDao) PutSplit(sp *engine.CommissionSplit) error {
	b, err := json.Marshal(sp.Recipients)
	if err != nil {
		return err
	}
	status := int8(0)
	if sp.Active {
		status = 1
	}
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var existing mainmodel.CommissionSplit
		err := tx.Where("m_id=? AND affiliate_id=?", sp.MerchantID, sp.AffiliateID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			return tx.Model(&existing).Updates(map[string]interface{}{
				"recipients": string(b),
				"status":     status,
			}).Error
		}
		return tx.Create(&mainmodel.CommissionSplit{
			MerchantID:  sp.MerchantID,
			AffiliateID: sp.AffiliateID,
			Recipients:  string(b),
			Status:      status,
		}).Error
	})
}

func (r *MainDao) IsAdmin(id uint64) (bool, error) {
	var m mainmodel.PayoutAdmin
	if err := dal.MainDB.Where("admin_id=?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Status == 1, nil
}

func (r *MainDao) SetAdmin(id uint64, active bool) error {
	status := int8(0)
	if active {
		status = 1
	}
	return dal.MainDB.Save(&mainmodel.PayoutAdmin{AdminID: id, Status: status}).Error
}

// 调度状态单例行 id=1

func (r *MainDao) GetScheduleState() (*schedule.State, error) {
	var m mainmodel.ScheduleState
	if err := dal.MainDB.Where("id=?", 1).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule.State{
		NextDaily:   m.NextDaily,
		NextWeekly:  m.NextWeekly,
		NextMonthly: m.NextMonthly,
	}, nil
}

func (r *MainDao) PutScheduleState(st *schedule.State) error {
	return dal.MainDB.Save(&mainmodel.ScheduleState{
		ID:          1,
		NextDaily:   st.NextDaily,
		NextWeekly:  st.NextWeekly,
		NextMonthly: st.NextMonthly,
	}).Error
}
