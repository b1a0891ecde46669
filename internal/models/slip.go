package models

import "time"

// Slip is an uploaded proof-of-payment file attached to an order. An order
// has at most one slip; uploading a replacement removes the previous file and
// record first.
type Slip struct {
	SlipID        uint          `json:"slip_id" gorm:"primaryKey"`
	OrderID       uint          `json:"order_id" gorm:"uniqueIndex;not null"`
	FileName      string        `json:"file_name" gorm:"not null;type:varchar(255)"`
	FilePath      string        `json:"file_path" gorm:"not null;type:varchar(500)"`
	FileType      string        `json:"file_type" gorm:"type:varchar(100)"`
	FileSize      int64         `json:"file_size"`
	UploadedAt    time.Time     `json:"uploaded_at"`
	Verified      bool          `json:"verified"`
	VerifiedAt    *time.Time    `json:"verified_at,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20)"` // status that triggered verification
}

// MarkVerified sets the verified flag and timestamp, recording the payment
// status that triggered it.
func (s *Slip) MarkVerified(status PaymentStatus, at time.Time) {
	s.Verified = true
	s.VerifiedAt = &at
	s.PaymentStatus = status
}
