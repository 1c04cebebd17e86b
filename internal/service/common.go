package service

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/logger"
	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/utils"
)

// requireRole fails with Forbidden unless id holds one of roles.
func requireRole(op string, id model.Identity, msg string, roles ...model.Role) error {
	if id.ID == 0 {
		return utils.Unauthenticated(op, "authentication required")
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return utils.Forbidden(op, msg)
}

// requireID rejects the zero id, the only non-positive uint64.
func requireID(op, what string, v uint64) error {
	if v == 0 {
		return utils.InvalidInput(op, fmt.Sprintf("Valid %s ID is required", what))
	}
	return nil
}

func orDiscard(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return logger.Discard()
	}
	return l
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
