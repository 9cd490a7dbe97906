package accesslog

import "time"

// AccessLog is one recorded API request. Rows feed the admin activity
// buckets, so only the fields those aggregations need are kept.
type AccessLog struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	Method  string  `gorm:"size:8;not null" json:"method"`
	Path    string  `gorm:"size:256;not null" json:"path"`
	Status  int     `gorm:"not null" json:"status"`
	UserID  *uint   `gorm:"index" json:"userId"`
	GuestID *string `gorm:"size:64;index" json:"guestId"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
