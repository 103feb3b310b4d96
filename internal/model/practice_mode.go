package model

// 练习模式目录。顺序即客户端展示顺序
const (
	ModeRead         = "read"
	ModeFlashCards   = "flash_cards"
	ModeFillBlanks   = "fill_blanks"
	ModeWordBank     = "word_bank"
	ModeFirstLetters = "first_letters"
	ModeTypeItOut    = "type_it_out"
	ModeAudioRecall  = "audio_recall"
	ModeVersePuzzle  = "verse_puzzle"
)

// AllPracticeModes 完整目录，付费等级可见全部
var AllPracticeModes = []string{
	ModeRead,
	ModeFlashCards,
	ModeFillBlanks,
	ModeWordBank,
	ModeFirstLetters,
	ModeTypeItOut,
	ModeAudioRecall,
	ModeVersePuzzle,
}

// freePracticeModes 免费等级可见的子集
var freePracticeModes = []string{
	ModeRead,
	ModeFlashCards,
	ModeFillBlanks,
}

// ModePoolForTier 返回等级可见的练习模式池
func ModePoolForTier(tier SubscriptionTier) []string {
	if tier == TierFree {
		return freePracticeModes
	}
	return AllPracticeModes
}

// ModeInPool 判断模式是否在等级的模式池内
func ModeInPool(tier SubscriptionTier, mode string) bool {
	for _, m := range ModePoolForTier(tier) {
		if m == mode {
			return true
		}
	}
	return false
}

// ValidPracticeMode 判断模式标识是否在目录中
func ValidPracticeMode(mode string) bool {
	for _, m := range AllPracticeModes {
		if m == mode {
			return true
		}
	}
	return false
}

// UnlockLimitForTier 返回每条目每日可解锁的模式数，-1 表示不限
func UnlockLimitForTier(tier SubscriptionTier) int {
	switch tier {
	case TierFree:
		return 1
	case TierStandard:
		return 2
	case TierPlus:
		return 3
	case TierPremium:
		return -1
	}
	return 1
}
