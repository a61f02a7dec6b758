package service

import (
	"postforge-api/internal/domain"
)

// AccessEvaluator decides whether an identity may view or submit a
// form. Disabled forms deny everyone; login-required forms with an
// empty allowed-role set also deny everyone, never "allow all".
type AccessEvaluator interface {
	CanView(form *domain.Form, identity domain.Identity) bool
	CanSubmit(form *domain.Form, identity domain.Identity) bool
}

// accessEvaluatorImpl is the implementation of AccessEvaluator
type accessEvaluatorImpl struct{}

// NewAccessEvaluator creates a new instance of AccessEvaluator
func NewAccessEvaluator() AccessEvaluator {
	return &accessEvaluatorImpl{}
}

// CanView reports whether the identity may see the rendered form
func (e *accessEvaluatorImpl) CanView(form *domain.Form, identity domain.Identity) bool {
	return e.evaluate(form, identity)
}

// CanSubmit reports whether the identity may submit the form. The rules
// are currently identical to CanView.
func (e *accessEvaluatorImpl) CanSubmit(form *domain.Form, identity domain.Identity) bool {
	return e.evaluate(form, identity)
}

func (e *accessEvaluatorImpl) evaluate(form *domain.Form, identity domain.Identity) bool {
	if !form.Enabled {
		return false
	}
	if !form.LoginRequired {
		return true
	}
	if identity.Anonymous() {
		return false
	}
	// An empty allowed-role set denies everyone; there is no implicit
	// wildcard.
	return identity.HasAnyRole(form.AllowedRoles)
}
