package game

// CompanyOwner is anything that can hold companies: a player or a
// corporation.
type CompanyOwner interface {
	OwnerName() string
	addCompany(c *Company)
	removeCompany(c *Company)
}

// Company is a privately held sub-company. Its value and tier feed a
// corporation's book value and synergy income; Synergies lists the names of
// companies it pairs with.
type Company struct {
	Name      string
	Value     int
	Tier      Tier
	Synergies []string

	owner CompanyOwner
}

// Owner returns the current holder, nil while the company is still in the
// deck.
func (c *Company) Owner() CompanyOwner {
	return c.owner
}

// transferTo moves the company from its current owner's holdings to next.
func (c *Company) transferTo(next CompanyOwner) {
	if c.owner != nil {
		c.owner.removeCompany(c)
	}
	c.owner = next
	if next != nil {
		next.addCompany(c)
	}
}
