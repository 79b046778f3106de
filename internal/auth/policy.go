package auth

// KindConstraint restricts which principal population an operation admits.
type KindConstraint string

const (
	AnyPrincipal KindConstraint = "any"
	StaffOnly    KindConstraint = "staff"
	ClientOnly   KindConstraint = "client"
)

// Requirement is the static, per-operation access declaration attached by
// the calling handler. An empty Roles slice admits any role of the allowed
// kind. OwnerID, when set, is the resource owner a client principal must
// match.
type Requirement struct {
	Kind    KindConstraint
	Roles   []Role
	OwnerID *int64
}

// WithOwner returns a copy of the requirement bound to a concrete resource
// owner. The base requirement stays reusable across requests.
func (r Requirement) WithOwner(ownerID int64) Requirement {
	r.OwnerID = &ownerID
	return r
}

// DenyReason identifies why an authorization decision failed.
type DenyReason string

const (
	DenyWrongPrincipalKind DenyReason = "wrong_principal_kind"
	DenyInsufficientRole   DenyReason = "insufficient_role"
	DenyNotOwner           DenyReason = "not_owner"
)

// Decision is the outcome of Authorize. Reason is empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// Authorize decides access for a principal against a requirement. It is a
// pure function of its two inputs: no I/O, no clock, no store.
//
// Decision order: kind first, then role intersection for staff, then the
// ownership predicate for clients. Administrators pass ownership predicates
// by role expansion alone; the predicate is only evaluated for clients.
func Authorize(p Principal, req Requirement) Decision {
	switch req.Kind {
	case StaffOnly:
		if p.Kind != KindStaff {
			return deny(DenyWrongPrincipalKind)
		}
	case ClientOnly:
		if p.Kind != KindClient {
			return deny(DenyWrongPrincipalKind)
		}
	}

	if p.Kind == KindStaff && len(req.Roles) > 0 {
		expanded := Expand(p.Roles...)
		matched := false
		for _, r := range req.Roles {
			if expanded.Contains(r) {
				matched = true
				break
			}
		}
		if !matched {
			return deny(DenyInsufficientRole)
		}
	}

	if p.Kind == KindClient && req.OwnerID != nil && p.ID != *req.OwnerID {
		return deny(DenyNotOwner)
	}

	return allow()
}
