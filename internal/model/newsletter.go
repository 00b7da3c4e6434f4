package model

import "time"

// NewsletterSubscriber is an email on the marketing list.  Subscribing
// an unsubscribed address reactivates it.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  Name         – optional subscriber name.
//  Status       – "active" or "unsubscribed".
//  SubscribedAt – when the address (re)subscribed.
type NewsletterSubscriber struct {
	ID           uint64    // newsletter_subscribers.id
	Email        string    // newsletter_subscribers.email
	Name         string    // newsletter_subscribers.name
	Status       string    // newsletter_subscribers.status
	SubscribedAt time.Time // newsletter_subscribers.subscribed_at
}
