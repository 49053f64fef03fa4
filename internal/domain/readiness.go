package domain

// Readiness summarizes whether an event's lineup is fully resolved.
// Declined and canceled invitations are not part of the current ask and are
// excluded from TotalInvited.
type Readiness struct {
	IsReady      bool `json:"is_ready"`
	Accepted     int  `json:"accepted"`
	TotalInvited int  `json:"total_invited"`
	Pending      int  `json:"pending"`
}

// EvaluateReadiness computes publish readiness from an event's invitations:
// no pending invitations remain and at least one artist accepted. An event
// with no invitations at all is never ready.
func EvaluateReadiness(invitations []*Invitation) Readiness {
	r := Readiness{}
	for _, inv := range invitations {
		switch inv.Status {
		case StatusPending:
			r.Pending++
			r.TotalInvited++
		case StatusAccepted:
			r.Accepted++
			r.TotalInvited++
		}
	}
	r.IsReady = r.Pending == 0 && r.Accepted >= 1
	return r
}
