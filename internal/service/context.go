package service

import "github.com/google/uuid"

// CallerContext identifies who is performing an operation and which
// kitchen it is scoped to. It is passed explicitly into every service
// call; there is no ambient security context.
type CallerContext struct {
	UserID    uuid.UUID
	KitchenID uuid.UUID
}
