package handlers

import (
	"restohub-api/otp"
	"restohub-api/storage"
)

// Package-level collaborators, wired once at startup.
var (
	// Images is where menu and ad uploads land.
	Images storage.ObjectStore

	// OTP drives the email-verification lifecycle.
	OTP *otp.Machine
)

// Init wires the handler collaborators.
func Init(images storage.ObjectStore, machine *otp.Machine) {
	Images = images
	OTP = machine
}
