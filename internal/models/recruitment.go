package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RecruitmentSource: Aday kaynağı (referans, ilan sitesi, kariyer günü vb.)
type RecruitmentSource struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CandidateStatus string

const (
	CandidateApplied   CandidateStatus = "applied"
	CandidateScreening CandidateStatus = "screening"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffered   CandidateStatus = "offered"
	CandidateHired     CandidateStatus = "hired"
	CandidateRejected  CandidateStatus = "rejected"
)

// candidateTransitions: Aday durum akışı. Her durumdan reddedilmeye izin verilir.
var candidateTransitions = map[CandidateStatus][]CandidateStatus{
	CandidateApplied:   {CandidateScreening, CandidateRejected},
	CandidateScreening: {CandidateInterview, CandidateRejected},
	CandidateInterview: {CandidateOffered, CandidateRejected},
	CandidateOffered:   {CandidateHired, CandidateRejected},
}

type RecruitmentCandidate struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"size:20;uniqueIndex"` // Otomatik üretilir: UV00001
	FullName     string `gorm:"size:150;not null"`
	Email        string `gorm:"size:100;index;not null"`
	Phone        string `gorm:"size:50"`
	SourceID     uint   `gorm:"index;not null"`
	Source       RecruitmentSource
	BranchID     uint  `gorm:"index;not null"`
	DepartmentID *uint `gorm:"index"`
	Department   *Department
	Position     string          `gorm:"size:100;not null"`
	Status       CandidateStatus `gorm:"size:15;not null;default:applied"`
	AppliedAt    time.Time       `gorm:"index;not null"`
	HiredAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (rc *RecruitmentCandidate) AfterCreate(tx *gorm.DB) error {
	if rc.Code != "" {
		return nil
	}
	rc.Code = fmt.Sprintf("UV%05d", rc.ID)
	return tx.Model(rc).Update("code", rc.Code).Error
}

func (rc *RecruitmentCandidate) CanTransition(to CandidateStatus) bool {
	for _, allowed := range candidateTransitions[rc.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}
