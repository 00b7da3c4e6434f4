package model

import "time"

// Customer is a guest who has booked at least once.  Customers are
// keyed by email: booking with a known email updates the stored name
// and phone instead of creating a duplicate row.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – customer name as given on the latest booking.
//  Email            – unique email address.
//  Phone            – contact phone (optional).
//  NewsletterSignup – whether the customer opted into the newsletter.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Customer struct {
	ID               uint64    // customers.id
	Name             string    // customers.name
	Email            string    // customers.email
	Phone            string    // customers.phone
	NewsletterSignup bool      // customers.newsletter_signup
	CreatedAt        time.Time // customers.created_at
	UpdatedAt        time.Time // customers.updated_at
}
