package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID fills an empty primary key before insert.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error { assignID(&u.ID); return nil }
func (c *Court) BeforeCreate(*gorm.DB) error { assignID(&c.ID); return nil }
func (p *CourtPrice) BeforeCreate(*gorm.DB) error { assignID(&p.ID); return nil }
func (p *Payment) BeforeCreate(*gorm.DB) error { assignID(&p.ID); return nil }
func (r *Reservation) BeforeCreate(*gorm.DB) error { assignID(&r.ID); return nil }
func (a *AuditLog) BeforeCreate(*gorm.DB) error { assignID(&a.ID); return nil }
