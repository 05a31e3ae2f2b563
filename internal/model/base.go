package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-pos-inventory/pkg/idgen"
)

// SystemActor is recorded in audit fields when no staff member is acting.
const SystemActor = "system"

func init() {
	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseModel handles the string ID and standard audit trail
type BaseModel struct {
	ID        string    `gorm:"type:varchar(40);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Audit user tracking
	CreatedBy string `gorm:"type:varchar(40)" json:"createdBy,omitempty"`
	UpdatedBy string `gorm:"type:varchar(40)" json:"updatedBy,omitempty"`
}

// BeforeCreate generates an ID when the caller did not supply one
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == "" {
		base.ID = idgen.New()
	}
	return
}

// Stamp fills the ID, timestamps and audit fields for a write by actor.
func (base *BaseModel) Stamp(actor string, now time.Time) {
	if actor == "" {
		actor = SystemActor
	}
	if base.ID == "" {
		base.ID = idgen.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
		base.CreatedBy = actor
	}
	base.UpdatedAt = now
	base.UpdatedBy = actor
}
