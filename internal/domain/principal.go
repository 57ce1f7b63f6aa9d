package domain

// Principal is the authenticated caller. It carries only what the booking
// rules need: who is calling and whether they administer the site.
type Principal struct {
	UserID uint
	Admin  bool
}

// Anonymous reports whether no user is attached.
func (p Principal) Anonymous() bool {
	return p.UserID == 0
}
