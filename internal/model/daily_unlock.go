package model

// DailyUnlockRecord 每个 (用户, 条目, 日历日) 一条，记录当日已解锁的练习模式
// SlotsUsed 作为并发追加时的比较字段，防止超出当日限额
// 每天从空集合重新开始，历史记录按保留窗口清理
// swagger:model DailyUnlockRecord
type DailyUnlockRecord struct {
	BaseModel
	UserID     uint   `gorm:"type:bigint unsigned;not null;index:idx_unlock_user_item_date,unique" json:"userId"`
	ItemID     uint   `gorm:"type:bigint unsigned;not null;index:idx_unlock_user_item_date,unique" json:"itemId"`
	UnlockDate string `gorm:"size:10;not null;index:idx_unlock_user_item_date,unique;index" json:"unlockDate"` // "2006-01-02"

	Modes     []string         `gorm:"serializer:json;type:json" json:"modes"`
	SlotsUsed int              `gorm:"default:0" json:"slotsUsed"`
	Tier      SubscriptionTier `gorm:"type:enum('free','standard','plus','premium');not null" json:"tier"` // 计算限额时的等级快照
	SlotLimit int              `gorm:"not null" json:"slotLimit"`
}

func (DailyUnlockRecord) TableName() string {
	return "daily_unlock_records"
}

// Contains 判断模式当日是否已解锁
func (r *DailyUnlockRecord) Contains(mode string) bool {
	for _, m := range r.Modes {
		if m == mode {
			return true
		}
	}
	return false
}
