package model

import (
	"time"
)

type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "free"
	TierStandard SubscriptionTier = "standard"
	TierPlus     SubscriptionTier = "plus"
	TierPremium  SubscriptionTier = "premium"
)

// ValidTier 校验订阅等级是否合法
func ValidTier(t SubscriptionTier) bool {
	switch t {
	case TierFree, TierStandard, TierPlus, TierPremium:
		return true
	}
	return false
}

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string           `gorm:"size:100;not null" json:"name"`
	Email     string           `gorm:"size:100;unique;not null" json:"email"`
	Password  string           `gorm:"size:100;not null" json:"-"`
	Role      UserRole         `gorm:"type:enum('member','admin');default:'member'" json:"role"`
	Tier      SubscriptionTier `gorm:"type:enum('free','standard','plus','premium');default:'free'" json:"tier"` // 订阅等级，由计费系统写入
	XP        int              `gorm:"default:0" json:"xp"`                                                      // 成就与挑战奖励累计
	Language  string           `gorm:"size:10;default:'en'" json:"language"`
	Timezone  string           `gorm:"size:50;default:'UTC'" json:"timezone"`
	LastLogin time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
