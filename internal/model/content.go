package model

// Content 记忆内容的元数据（经文/段落的展示文本）
// 仅供展示与查找，调度算法不读取正文
// swagger:model Content
type Content struct {
	BaseModel
	Ref         string `gorm:"size:100;not null;index:idx_content_ref_translation,unique" json:"ref"` // 规范化引用，如 "john.3.16"
	Translation string `gorm:"size:20;not null;default:'default';index:idx_content_ref_translation,unique" json:"translation"`
	DisplayRef  string `gorm:"size:150;not null" json:"displayRef"` // 展示用引用，如 "John 3:16"
	Text        string `gorm:"type:text;not null" json:"text"`
}

func (Content) TableName() string {
	return "contents"
}
