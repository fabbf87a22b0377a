// Package cache holds pending registrations between the register and
// verify-email steps. Entries expire instead of living until process restart.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/buttcoder420/FinalYear-backend/models"
)

// PendingRegistration is a not-yet-persisted user plus the emailed code.
type PendingRegistration struct {
	User             models.User
	VerificationCode string
}

type RegistrationCache struct {
	c *gocache.Cache
}

// NewRegistrationCache builds a cache whose entries expire after ttl.
func NewRegistrationCache(ttl time.Duration) *RegistrationCache {
	return &RegistrationCache{c: gocache.New(ttl, 2*ttl)}
}

func (r *RegistrationCache) Set(email string, pending PendingRegistration) {
	r.c.SetDefault(email, pending)
}

func (r *RegistrationCache) Get(email string) (PendingRegistration, bool) {
	v, ok := r.c.Get(email)
	if !ok {
		return PendingRegistration{}, false
	}
	return v.(PendingRegistration), true
}

func (r *RegistrationCache) Delete(email string) {
	r.c.Delete(email)
}
