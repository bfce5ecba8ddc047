package models

import "time"

// Block: Şube altındaki bina/blok birimi (organizasyon hiyerarşisi: şube > blok > departman)
type Block struct {
	ID        uint   `gorm:"primaryKey"`
	BranchID  uint   `gorm:"index;not null;uniqueIndex:idx_blocks_branch_name"`
	Branch    Branch
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_blocks_branch_name"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Departments []Department
}
