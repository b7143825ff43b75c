package model

// OutboundMessage is a single draft request handed to the mail client.
// It is built per (queue item, vendor) pair and discarded after the draft call.
type OutboundMessage struct {
	To          string
	ToName      string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []string
}
