package holiday

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_holidays_company_date" json:"company_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_company_date" json:"date"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateKey is the yyyy-mm-dd form used to match holidays against days.
func (h Holiday) DateKey() string {
	return h.Date.Format(dateLayout)
}

// Set indexes holidays by DateKey.
func Set(holidays []Holiday) map[string]string {
	out := make(map[string]string, len(holidays))
	for _, h := range holidays {
		out[h.DateKey()] = h.Name
	}
	return out
}
